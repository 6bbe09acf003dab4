package app

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hyperifyio/profilescout/internal/discover"
)

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// writeJSON persists candidates as a flat JSON array.
func writeJSON(path string, candidates []discover.Candidate) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if candidates == nil {
		candidates = []discover.Candidate{}
	}
	b, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// writeCSV persists candidates with a fixed header row.
func writeCSV(path string, candidates []discover.Candidate) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "name", "url", "snippet", "engine"}); err != nil {
		return err
	}
	for _, c := range candidates {
		if err := w.Write([]string{strconv.Itoa(c.Rank), c.Name, c.URL, c.Snippet, c.Engine}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
