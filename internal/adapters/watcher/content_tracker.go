package watcher

import (
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
	"github.com/ripplebuild/ripple/internal/core/domain"
)

// ContentTracker remembers a content hash per file so the pipeline can drop
// change events whose bytes did not actually change. Editors and build
// tooling frequently rewrite files in place without modifying content.
type ContentTracker struct {
	mu   sync.Mutex
	sums map[unique.Handle[string]]uint64
}

// NewContentTracker creates an empty tracker.
func NewContentTracker() *ContentTracker {
	return &ContentTracker{
		sums: make(map[unique.Handle[string]]uint64),
	}
}

// Changed reads the file, hashes its content and reports whether the hash
// differs from the last observation. Unreadable files always report changed
// so downstream handling decides what to do with them.
func (t *ContentTracker) Changed(path string) bool {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the watcher
	if err != nil {
		return true
	}

	key := unique.Make(domain.NormalizePath(path))
	sum := xxhash.Sum64(data)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.sums[key]; ok && prev == sum {
		return false
	}
	t.sums[key] = sum
	return true
}

// Forget drops all remembered hashes, forcing the next observation of every
// file to report changed. Called around full graph rebuilds.
func (t *ContentTracker) Forget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sums = make(map[unique.Handle[string]]uint64)
}
