package domain

import (
	"strings"
	"unique"
)

// NormalizePath canonicalizes a file system path into the form used as a
// graph key. Backslash separators become forward slashes, the whole string
// is lower-cased, and a single trailing separator is stripped. A leading
// UNC double-slash prefix survives untouched so share paths keep their
// meaning. The function is pure and idempotent; malformed input is returned
// in its best-effort normalized form rather than rejected.
func NormalizePath(path string) string {
	if path == "" {
		return path
	}

	s := strings.ReplaceAll(path, "\\", "/")
	s = strings.ToLower(s)

	// Strip exactly one trailing separator, but never reduce the path to
	// the empty string or collapse a bare root.
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = s[:len(s)-1]
	}

	return s
}

// FileIdentity is the canonical, platform-independent key for a source file.
// It wraps a unique.Handle so identical paths share storage and compare in
// constant time. Two paths referring to the same file always produce the
// same FileIdentity.
type FileIdentity struct {
	h unique.Handle[string]
}

// NewFileIdentity normalizes the given path and interns it.
func NewFileIdentity(path string) FileIdentity {
	return FileIdentity{
		h: unique.Make(NormalizePath(path)),
	}
}

// String returns the canonical key.
func (id FileIdentity) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the identity is the zero value.
func (id FileIdentity) IsZero() bool {
	return id == FileIdentity{}
}

// MarshalText implements encoding.TextMarshaler.
func (id FileIdentity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The text is normalized before interning so round-trips stay canonical.
func (id *FileIdentity) UnmarshalText(text []byte) error {
	id.h = unique.Make(NormalizePath(string(text)))
	return nil
}
