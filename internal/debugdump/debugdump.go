// Package debugdump persists raw page snapshots for post-mortem inspection
// of runs that produced no usable results.
package debugdump

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink writes captured page bodies under a fixed directory. The zero value
// and the nil sink are inert, so callers can wire it unconditionally.
type Sink struct {
	Dir string
	// now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Capture writes body unmodified as debug_<label>_<timestamp>.html and
// returns the artifact path. An unset sink returns an empty path and no
// error. Capture itself never panics; the caller is expected to log a write
// failure and move on, diagnostics must not break the primary flow.
func (s *Sink) Capture(body []byte, label string) (string, error) {
	if s == nil || s.Dir == "" {
		return "", nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ts := now().UTC().Format("20060102T150405.000000000Z")
	name := fmt.Sprintf("debug_%s_%s.html", label, ts)
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create debug dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
