package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nickromney/certfacts/internal/cert"
	"github.com/nickromney/certfacts/internal/inventory"
	"github.com/nickromney/certfacts/test/testutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteArtifact(t, dir, "alpha", testutil.WithNotAfter(time.Now().AddDate(0, 0, 10)))
	testutil.WriteDescriptor(t, dir, "beta")

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := &inventory.Builder{
		Inspector: &inventory.Inspector{Toolkit: cert.Native{}, Log: log},
		Log:       log,
	}
	return New(context.Background(), b, dir)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModel_InitBuildsReport(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(m.View(), "scanning") {
		t.Fatalf("expected scanning state before the first report")
	}

	msg := m.Init()()
	rm, ok := msg.(ReportMsg)
	if !ok {
		t.Fatalf("Init cmd returned %T", msg)
	}
	if len(rm.Report) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rm.Report))
	}

	m, _ = update(t, m, rm)
	if m.loading {
		t.Fatal("expected loading to clear")
	}
	view := m.View()
	for _, want := range []string{"alpha", "beta", "2 names", "1 valid", "1 invalid", "1 expiring"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_InterruptedBuildKeepsReport(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.Init()())

	m, _ = update(t, m, ReportMsg{Err: context.Canceled, BuiltAt: time.Now()})
	if m.loading {
		t.Fatal("expected loading to clear")
	}
	if len(m.report) != 2 {
		t.Fatalf("expected previous report to stay, got %d records", len(m.report))
	}
}

func TestModel_DetailFollowsCursor(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, m.Init()())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.showDetail || cmd == nil {
		t.Fatal("expected enter to open details and request them")
	}
	dm, ok := cmd().(DetailMsg)
	if !ok || dm.Name != "alpha" {
		t.Fatalf("expected alpha details, got %#v", dm)
	}
	if !strings.Contains(dm.Text, "RSA 2048") {
		t.Fatalf("expected public key description in:\n%s", dm.Text)
	}
	m, _ = update(t, m, dm)
	if !strings.Contains(m.View(), "Identity MD5") {
		t.Fatalf("expected detail box in view:\n%s", m.View())
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selectedName() != "beta" || cmd == nil {
		t.Fatalf("expected cursor on beta with a detail request, got %q", m.selectedName())
	}

	// A stale detail for a row no longer selected is ignored.
	m, _ = update(t, m, DetailMsg{Name: "alpha", Text: "stale"})
	if m.detailText == "stale" {
		t.Fatal("expected stale detail to be dropped")
	}
}

func TestModel_RefreshAndQuit(t *testing.T) {
	m := newTestModel(t)

	// Refresh is ignored while the first build is in flight.
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}); cmd != nil {
		t.Fatal("expected no rebuild while loading")
	}

	m, _ = update(t, m, m.Init()())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.loading || cmd == nil {
		t.Fatal("expected refresh to start a rebuild")
	}
	if _, ok := cmd().(ReportMsg); !ok {
		t.Fatal("expected refresh cmd to produce a ReportMsg")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestDescribe_MissingCert(t *testing.T) {
	text := describe(context.Background(), t.TempDir(), "ghost")
	if !strings.Contains(text, "Parse") {
		t.Fatalf("expected parse error line, got:\n%s", text)
	}
	if describe(context.Background(), t.TempDir(), "") != "" {
		t.Fatal("expected empty description for empty name")
	}
}
