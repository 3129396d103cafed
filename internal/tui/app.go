package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nickromney/certfacts/internal/cert"
	"github.com/nickromney/certfacts/internal/inventory"
)

// warnDays highlights certificates expiring within this many days.
const warnDays = 30

// Model is the root Bubbletea model for the TUI.
type Model struct {
	ctx     context.Context
	builder *inventory.Builder
	dir     string

	table  table.Model
	report inventory.Report

	// State
	loading       bool
	builtAt       time.Time
	showDetail    bool
	detailName    string
	detailText    string
	width, height int
}

// New creates the model. The first report is built by Init.
func New(ctx context.Context, b *inventory.Builder, dir string) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(tableStyles()),
	)
	return Model{
		ctx:     ctx,
		builder: b,
		dir:     dir,
		table:   t,
		loading: true,
	}
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, b *inventory.Builder, dir string) error {
	p := tea.NewProgram(New(ctx, b, dir), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func columns(width int) []table.Column {
	// name takes whatever the fixed columns leave.
	const fixed = 7 + 12 + 6 + 8
	nameW := width - fixed
	if nameW < 12 {
		nameW = 12
	}
	return []table.Column{
		{Title: "Name", Width: nameW},
		{Title: "Valid", Width: 7},
		{Title: "Expiration", Width: 12},
		{Title: "Days", Width: 6},
	}
}

func rows(report inventory.Report) []table.Row {
	out := make([]table.Row, 0, len(report))
	for _, rec := range report.Records() {
		out = append(out, table.Row{
			rec.Name,
			rec.Valid.String(),
			rec.Expiration.String(),
			rec.DaysRemaining.String(),
		})
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return m.buildCmd()
}

func (m Model) buildCmd() tea.Cmd {
	ctx, b, dir := m.ctx, m.builder, m.dir
	return func() tea.Msg {
		report, err := b.Build(ctx, dir)
		return ReportMsg{Report: report, BuiltAt: time.Now(), Err: err}
	}
}

func (m Model) detailCmd(name string) tea.Cmd {
	ctx, dir := m.ctx, m.dir
	return func() tea.Msg {
		return DetailMsg{Name: name, Text: describe(ctx, dir, name)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case ReportMsg:
		m.loading = false
		if msg.Err != nil {
			return m, nil
		}
		m.report = msg.Report
		m.builtAt = msg.BuiltAt
		m.table.SetRows(rows(msg.Report))
		if m.table.Cursor() >= len(msg.Report) {
			m.table.SetCursor(0)
		}
		if m.showDetail {
			return m, m.detailCmd(m.selectedName())
		}
		return m, nil

	case DetailMsg:
		if msg.Name == m.selectedName() {
			m.detailName, m.detailText = msg.Name, msg.Text
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.buildCmd()
	case key.Matches(msg, keys.Detail):
		m.showDetail = !m.showDetail
		m.layout()
		if m.showDetail {
			return m, m.detailCmd(m.selectedName())
		}
		return m, nil
	}

	before := m.selectedName()
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if m.showDetail && m.selectedName() != before {
		return m, tea.Batch(cmd, m.detailCmd(m.selectedName()))
	}
	return m, cmd
}

func (m Model) selectedName() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.table.SetColumns(columns(m.width - 2))
	m.table.SetWidth(m.width)

	// title + summary + status bar
	h := m.height - 3
	if m.showDetail {
		h -= 9
	}
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("certfacts"))
	b.WriteString(dirStyle.Render(m.dir))
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showDetail {
		text := m.detailText
		if m.detailName != m.selectedName() || text == "" {
			text = statusDescStyle.Render("loading…")
		}
		w := m.width - 2
		if w < 20 {
			w = 20
		}
		b.WriteString(detailBoxStyle.Width(w).Render(text))
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) summary() string {
	if m.loading && m.report == nil {
		return statusDescStyle.Render(" scanning…")
	}

	var ok, mismatch, unchecked, expiring, expired int
	for _, rec := range m.report {
		switch v, known := rec.Valid.Get(); {
		case !known:
			unchecked++
		case v:
			ok++
		default:
			mismatch++
		}
		if n, known := rec.DaysRemaining.Get(); known {
			switch {
			case n < 0:
				expired++
			case n <= warnDays:
				expiring++
			}
		}
	}

	parts := []string{
		fmt.Sprintf(" %d names", len(m.report)),
		successStyle.Render(fmt.Sprintf("%d valid", ok)),
		errorStyle.Render(fmt.Sprintf("%d invalid", mismatch)),
	}
	if unchecked > 0 {
		parts = append(parts, statusDescStyle.Render(fmt.Sprintf("%d unchecked", unchecked)))
	}
	parts = append(parts,
		warningStyle.Render(fmt.Sprintf("%d expiring ≤%dd", expiring, warnDays)),
		errorStyle.Render(fmt.Sprintf("%d expired", expired)),
	)
	if !m.builtAt.IsZero() {
		parts = append(parts, statusDescStyle.Render("at "+m.builtAt.Format(time.TimeOnly)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) statusBar() string {
	var parts []string
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, statusKeyStyle.Render(h.Key)+" "+statusDescStyle.Render(h.Desc))
	}
	return statusBarStyle.Render(strings.Join(parts, "  "))
}

// describe gathers per-name details straight from the files. It is display
// only; the record itself comes from the Builder.
func describe(ctx context.Context, dir, name string) string {
	if name == "" {
		return ""
	}
	paths := inventory.PathsFor(dir, name)
	lines := []string{
		kv("Certificate", paths.Cert),
		kv("Key", paths.Key),
	}

	c, err := cert.ParseCertFile(paths.Cert)
	if err != nil {
		lines = append(lines, kv("Parse", err.Error()))
		return strings.Join(lines, "\n")
	}
	lines = append(lines,
		kv("Subject", c.Subject.String()),
		kv("Issuer", c.Issuer.String()),
		kv("Public key", cert.DescribePublicKey(c)),
		kv("Not after", c.NotAfter.UTC().Format(time.RFC3339)),
		kv("SHA-256", cert.FormatCertFingerprint(c)),
	)
	if raw, err := (cert.Native{}).CertModulus(ctx, paths.Cert); err == nil {
		_, md5Hex := cert.ModulusDigestsHex(cert.Identity(raw))
		lines = append(lines, kv("Identity MD5", md5Hex))
	}
	return strings.Join(lines, "\n")
}

func kv(k, v string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		infoKeyStyle.Render(fmt.Sprintf("%-13s", k+":")),
		" ",
		infoValueStyle.Render(v),
	)
}
