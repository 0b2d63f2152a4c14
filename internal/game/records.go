package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RecordStore receives completion-time candidates when a session is won and
// keeps whichever is best.
type RecordStore interface {
	// Best returns the stored best time in seconds, or ok=false if none.
	Best() (float64, bool)
	// Submit offers a completion time. It returns true if the candidate
	// improved on the stored best.
	Submit(seconds float64) (bool, error)
}

// FileRecordStore persists the best time as a single text line, e.g. "12.34".
type FileRecordStore struct {
	path string
}

// NewFileRecordStore creates a store backed by the given file. The file does
// not need to exist yet.
func NewFileRecordStore(path string) *FileRecordStore {
	return &FileRecordStore{path: path}
}

// Best reads the stored time. A missing or unparsable file means no record.
func (s *FileRecordStore) Best() (float64, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Submit stores the candidate if it beats the current best.
func (s *FileRecordStore) Submit(seconds float64) (bool, error) {
	if seconds <= 0 {
		return false, fmt.Errorf("completion time must be positive, got %g", seconds)
	}
	if best, ok := s.Best(); ok && best <= seconds {
		return false, nil
	}
	line := strconv.FormatFloat(seconds, 'f', 2, 64) + "\n"
	if err := os.WriteFile(s.path, []byte(line), 0o644); err != nil {
		return false, fmt.Errorf("write best time: %w", err)
	}
	return true, nil
}
