package util

import (
	"errors"
	"strings"
)

var ErrBadFileName = errors.New("invalid file name")

const maxFileNameLen = 255

// SanitizeFileName normalizes an uploaded document name so it is safe to
// embed in a storage key. Traversal sequences are rejected outright rather
// than rewritten.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrBadFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrBadFileName
	}
	if len(s) > maxFileNameLen {
		s = s[len(s)-maxFileNameLen:]
	}
	return s, nil
}
