package canon

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// Loader loads the allowlist index on first use and shares it afterwards.
// The index is read-only once loaded, so a Loader is safe for concurrent use.
type Loader struct {
	dir     string
	minSize int
	logger  *slog.Logger

	once sync.Once
	idx  *Index
}

// NewLoader creates a lazy loader for the artifacts in dir
func NewLoader(dir string, minSize int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, minSize: minSize, logger: logger}
}

// Index returns the shared index, loading it on the first call. Malformed
// artifacts demote to heuristic mode with a warning.
func (l *Loader) Index() *Index {
	l.once.Do(func() {
		if _, err := os.Stat(l.dir); l.dir == "" || errors.Is(err, fs.ErrNotExist) {
			l.logger.Info("allowlist directory not found, using heuristic canonicalization",
				"dir", l.dir)
			l.idx = Disabled()
			return
		}
		idx, err := LoadIndex(l.dir, l.minSize)
		if err != nil {
			l.logger.Warn("allowlist unavailable, using heuristic canonicalization",
				"dir", l.dir,
				"error", err)
			idx = Disabled()
		} else if !idx.Enabled() {
			l.logger.Info("allowlist below minimum size, using heuristic canonicalization",
				"dir", l.dir,
				"terms", idx.Size(),
				"min_size", l.minSize)
		}
		l.logger.Debug("allowlist loaded",
			"dir", l.dir,
			"terms", idx.Size(),
			"enabled", idx.Enabled())
		l.idx = idx
	})
	return l.idx
}

// Canonicalizer returns a canonicalizer backed by the shared index
func (l *Loader) Canonicalizer() *Canonicalizer {
	return New(l.Index())
}
