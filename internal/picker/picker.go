// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package picker selects a random asset from a directory and maps it to a web path.
package picker

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Random is the source of randomness used to choose an entry.
// IntN must return a value in [0, n).
type Random interface {
	IntN(n int) int
}

// globalRandom draws from the runtime-seeded math/rand/v2 generator.
type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// Picker lists a directory on every call and returns one matching file.
type Picker struct {
	rnd Random
}

// New creates a Picker. A nil Random uses the runtime-seeded global generator.
func New(rnd Random) *Picker {
	if rnd == nil {
		rnd = globalRandom{}
	}
	return &Picker{rnd: rnd}
}

// Pick returns a random file directly under dir whose name ends in ext.
// The second return value is false when the directory is missing, unreadable
// or holds no matching file.
func (p *Picker) Pick(dir, ext string) (string, bool) {
	files := List(dir, ext)
	if len(files) == 0 {
		return "", false
	}
	return files[p.rnd.IntN(len(files))], true
}

// List returns the paths of all regular files directly under dir with the
// given extension, in directory order. Hidden files are skipped.
func List(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("cannot list image directory", "dir", dir, "error", err)
		return nil
	}

	matches := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		name := e.Name()
		return !e.IsDir() && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ext)
	})

	return lo.Map(matches, func(e os.DirEntry, _ int) string {
		return filepath.Join(dir, e.Name())
	})
}
