package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"atelier-backend/internal/apperr"
)

// locatorPrefix is the URL shape local locators take; the serving route
// under /api/uploads resolves them back to files.
const locatorPrefix = "/api/uploads/"

// LocalBackend stores files under root/{owner}/{uuid}.{ext} and issues
// URL-shaped locators.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) *LocalBackend {
	return &LocalBackend{root: root}
}

func (b *LocalBackend) Save(ctx context.Context, content []byte, originalFilename, ownerID string) (string, error) {
	ownerDir := filepath.Join(b.root, ownerID)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return "", apperr.Dependency("failed to create upload directory")
	}

	// The stored name is a fresh UUID; only the extension of the
	// caller-supplied name survives.
	name := uuid.New().String()
	if ext := extensionOf(originalFilename); ext != "" {
		name += "." + ext
	}

	if err := os.WriteFile(filepath.Join(ownerDir, name), content, 0o644); err != nil {
		return "", apperr.Dependency("failed to write file")
	}

	return locatorPrefix + ownerID + "/" + name, nil
}

func (b *LocalBackend) Delete(ctx context.Context, locator string) (bool, error) {
	ownerID, name, ok := parseLocalLocator(locator)
	if !ok {
		return false, nil
	}

	err := os.Remove(filepath.Join(b.root, ownerID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, apperr.Dependency("failed to delete file")
	}
	return true, nil
}

func (b *LocalBackend) ListForOwner(ctx context.Context, ownerID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(b.root, ownerID))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, apperr.Dependency("failed to list upload directory")
	}

	// ReadDir returns entries sorted by name, which keeps the order stable.
	locators := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			locators = append(locators, locatorPrefix+ownerID+"/"+entry.Name())
		}
	}
	return locators, nil
}

// ResolvePath maps a local owner/filename pair to the physical path,
// rejecting anything that would escape the owner's directory.
func (b *LocalBackend) ResolvePath(ownerID, filename string) (string, error) {
	if !safeSegment(ownerID) || !safeSegment(filename) {
		return "", apperr.NotFound("file not found")
	}
	path := filepath.Join(b.root, ownerID, filename)
	if _, err := os.Stat(path); err != nil {
		return "", apperr.NotFound("file not found")
	}
	return path, nil
}

// parseLocalLocator splits a locator back into its owner and filename
// segments. Any shape other than prefix + exactly two clean segments is
// rejected.
func parseLocalLocator(locator string) (ownerID, name string, ok bool) {
	rest, found := strings.CutPrefix(locator, locatorPrefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || !safeSegment(parts[0]) || !safeSegment(parts[1]) {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.ContainsAny(s, "/\\") && s == filepath.Base(s)
}

var _ Backend = (*LocalBackend)(nil)

// String identifies the backend in startup logs.
func (b *LocalBackend) String() string {
	return fmt.Sprintf("local(%s)", b.root)
}
