package storage

import (
	"strings"

	"atelier-backend/internal/apperr"
)

// Validator enforces the extension allow-list and size ceiling. Both checks
// run before the codec or any backend touches the bytes, so a rejected
// upload has no side effects.
type Validator struct {
	allowed  map[string]bool
	maxBytes int64
}

func NewValidator(extensions []string, maxMB int) *Validator {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Validator{allowed: allowed, maxBytes: int64(maxMB) << 20}
}

func (v *Validator) Validate(filename string, size int64) error {
	ext := extensionOf(filename)
	if ext == "" || !v.allowed[ext] {
		return apperr.InvalidInput("file type %q is not allowed", ext)
	}
	if size > v.maxBytes {
		return apperr.InvalidInput("file exceeds the %d MB size limit", v.maxBytes>>20)
	}
	return nil
}

// extensionOf returns the lowercased portion after the final dot, without
// the dot itself.
func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
