package inventory

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDescriptorExt is the extension of the per-name descriptor file.
const DefaultDescriptorExt = ".json"

// Artifact file extensions.
const (
	CertExt = ".pem"
	KeyExt  = ".key"
)

// Paths are the expected certificate and key files for one logical name.
type Paths struct {
	Cert string
	Key  string
}

// PathsFor joins dir with <name>.pem and <name>.key.
func PathsFor(dir, name string) Paths {
	return Paths{
		Cert: filepath.Join(dir, name+CertExt),
		Key:  filepath.Join(dir, name+KeyExt),
	}
}

// Enumerate returns the sorted logical names that have a descriptor file
// <name><ext> directly inside dir. A missing or unreadable dir yields no
// names.
func Enumerate(dir, ext string) []string {
	return enumerate(slog.Default(), dir, ext)
}

func enumerate(log *slog.Logger, dir, ext string) []string {
	if ext == "" {
		ext = DefaultDescriptorExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("cert directory unavailable", "dir", dir, "err", err)
		return nil
	}

	seen := make(map[string]struct{}, len(entries))
	var names []string
	for _, ent := range entries {
		fname := ent.Name()
		// Glob semantics: dotfiles are not matched by *.json.
		if strings.HasPrefix(fname, ".") || ent.IsDir() {
			continue
		}
		if !strings.HasSuffix(fname, ext) {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isRegularFile follows symlinks, like a shell `test -f`.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
