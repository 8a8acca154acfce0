package script

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
)

//go:embed examples/*.tengo
var examplesFS embed.FS

// LoadExample returns a bundled script by name, with or without the
// .tengo extension.
func LoadExample(name string) ([]byte, error) {
	return examplesFS.ReadFile(cleanExamplePath(name))
}

// Examples lists the bundled script names.
func Examples() []string {
	entries, err := examplesFS.ReadDir("examples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	return names
}

func cleanExamplePath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "examples/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return fmt.Sprintf("examples/%s", s)
}
