package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cwbudde/algo-analysis/audio"
)

// ErrNoInputs indicates a directory without supported audio files.
var ErrNoInputs = errors.New("batch: no audio files found")

// Discover returns the supported audio files directly inside dir, sorted by
// name. Extensions match case-insensitively; subdirectories are not walked.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if audio.Supported(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputs, dir)
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath places the stem of input plus suffix inside dir.
func OutputPath(dir, input, suffix string) string {
	base := filepath.Base(input)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(dir, stem+suffix)
}
