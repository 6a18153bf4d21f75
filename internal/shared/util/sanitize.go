package util

import (
	"errors"
	"strings"
)

// SanitizeFileName makes an uploaded scan's name safe to embed in a storage
// key. Traversal sequences are rejected rather than repaired.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") {
		return "", errors.New("invalid file name")
	}
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s, nil
}
