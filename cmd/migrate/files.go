package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// migration is one SQL file. Version is the file name.
type migration struct {
	Version string
	Path    string
}

// migrationFiles lists the *.sql files in dir in lexical order.
func migrationFiles(dir string) ([]migration, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(paths)

	out := make([]migration, 0, len(paths))
	for _, p := range paths {
		out = append(out, migration{Version: filepath.Base(p), Path: p})
	}
	return out, nil
}

func (m migration) read() (string, error) {
	content, err := os.ReadFile(m.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read migration file %s: %w", m.Path, err)
	}
	return string(content), nil
}

// pending drops the migrations already recorded as applied.
func pending(all []migration, applied map[string]bool) []migration {
	out := make([]migration, 0, len(all))
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

// splitDDLStatements strips comment lines and splits on semicolons.
// Spanner's admin API takes one statement per entry.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
