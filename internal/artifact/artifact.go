// Package artifact locates packaged build outputs on disk.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoArtifact indicates that the package directory contains no file with
// the expected extension.
var ErrNoArtifact = errors.New("no packaged artifact found")

// SelectLatest returns the path of the newest file in dir whose name ends in
// ext. The scan is non-recursive. Ties on modification time are broken by the
// lexicographically greatest filename, which for `name-<version>.nupkg`
// outputs prefers the higher version string.
func SelectLatest(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read package directory %s: %w", dir, err)
	}

	var best string
	var bestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		mod := info.ModTime()
		switch {
		case best == "" || mod.After(bestMod):
			best, bestMod = entry.Name(), mod
		case mod.Equal(bestMod) && entry.Name() > best:
			best = entry.Name()
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: no %s files in %s", ErrNoArtifact, ext, dir)
	}
	return filepath.Join(dir, best), nil
}
