package graph

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// builtinNamespace marks compiler-provided modules that never resolve to a
// file on disk.
const builtinNamespace = "sass:"

// Graph is the shared dependency graph over all known stylesheets. A single
// reader/writer lock guards the node map: single-file refreshes and lookups
// may interleave, a full rebuild holds the write lock for its duration.
type Graph struct {
	mu    sync.RWMutex
	nodes map[domain.FileIdentity]*domain.StylesheetNode

	extensions   []string
	libraryRoots []string
	logger       ports.Logger
}

// New creates an empty graph. extensions are the supported source extensions
// in probe order; libraryRoots are the configured external include roots for
// bare references.
func New(extensions, libraryRoots []string, logger ports.Logger) *Graph {
	return &Graph{
		nodes:        make(map[domain.FileIdentity]*domain.StylesheetNode),
		extensions:   extensions,
		libraryRoots: libraryRoots,
		logger:       logger,
	}
}

// scanResult carries one file's extracted and resolved references out of the
// parallel scan phase. refs hold resolved on-disk paths in original case.
type scanResult struct {
	path string
	refs []string
	ok   bool
}

// RebuildAll clears the graph and re-derives every node from the given
// source files. Files that cannot be read are logged and skipped; a dangling
// reference is logged and dropped. The scan phase runs in parallel, the
// graph swap is atomic under the write lock.
func (g *Graph) RebuildAll(ctx context.Context, sourceFiles []string) error {
	results := make([]scanResult, len(sourceFiles))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, p := range sourceFiles {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			refs, err := g.scanFile(p)
			if err != nil {
				g.logger.Warn(fmt.Sprintf("skipping unreadable source %s: %v", p, err))
				return nil
			}
			results[i] = scanResult{path: p, refs: refs, ok: true}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[domain.FileIdentity]*domain.StylesheetNode, len(sourceFiles))
	for _, r := range results {
		if r.ok {
			g.ensureNodeLocked(r.path)
		}
	}
	for _, r := range results {
		if !r.ok {
			continue
		}
		from := domain.NewFileIdentity(r.path)
		for _, to := range r.refs {
			g.linkLocked(from, to)
		}
	}
	return nil
}

// RefreshOne re-extracts and re-resolves references for a single file,
// updating its outgoing edges and the inverse edges of every gained or lost
// target. An unreadable file keeps its previous edges.
func (g *Graph) RefreshOne(path string) error {
	refs, err := g.scanFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSourceReadFailed.Error())
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node := g.ensureNodeLocked(path)

	next := make(map[domain.FileIdentity]string, len(refs))
	for _, to := range refs {
		next[domain.NewFileIdentity(to)] = to
	}

	for to := range node.Uses {
		if _, keep := next[to]; !keep {
			g.unlinkLocked(node.Identity, to)
		}
	}
	for _, toPath := range next {
		g.linkLocked(node.Identity, toPath)
	}
	return nil
}

// scanFile reads one source file and resolves its references. Unresolvable
// references are logged as warnings and dropped.
func (g *Graph) scanFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := ExtractReferences(string(data))
	fromDir := filepath.Dir(path)

	refs := make([]string, 0, len(raw))
	for _, ref := range raw {
		if strings.HasPrefix(ref, builtinNamespace) {
			continue
		}
		resolved, ok := g.ResolveReference(ref, fromDir)
		if !ok {
			g.logger.Warn(fmt.Sprintf("%s: %q referenced from %s", domain.ErrReferenceNotFound, ref, path))
			continue
		}
		refs = append(refs, resolved)
	}
	return refs, nil
}

// ResolveReference maps a raw directive path to a file on disk. Probe order:
// the exact path, the path with each supported extension appended, the same
// two with the partial marker prefixed to the filename, then an index file
// inside a same-named directory. Bare references repeat the sequence under
// each configured library root. The first existing regular file wins.
func (g *Graph) ResolveReference(rawRef, fromDir string) (string, bool) {
	roots := []string{fromDir}
	if !filepath.IsAbs(rawRef) && !strings.HasPrefix(rawRef, ".") {
		roots = append(roots, g.libraryRoots...)
	}

	for _, root := range roots {
		if p, ok := g.probe(filepath.Join(root, rawRef)); ok {
			return p, true
		}
	}
	return "", false
}

// probe runs the candidate sequence for one base path.
func (g *Graph) probe(base string) (string, bool) {
	dir, name := filepath.Split(base)

	if isFile(base) {
		return base, true
	}
	for _, ext := range g.extensions {
		if p := base + ext; isFile(p) {
			return p, true
		}
	}

	partial := filepath.Join(dir, domain.PartialPrefix+name)
	if isFile(partial) {
		return partial, true
	}
	for _, ext := range g.extensions {
		if p := partial + ext; isFile(p) {
			return p, true
		}
	}

	for _, index := range []string{domain.IndexBaseName, domain.PartialPrefix + domain.IndexBaseName} {
		for _, ext := range g.extensions {
			if p := filepath.Join(base, index+ext); isFile(p) {
				return p, true
			}
		}
	}
	return "", false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// ensureNodeLocked returns the node for path, creating it when absent.
// Callers hold the write lock.
func (g *Graph) ensureNodeLocked(path string) *domain.StylesheetNode {
	id := domain.NewFileIdentity(path)
	if node, ok := g.nodes[id]; ok {
		return node
	}
	node := domain.NewStylesheetNode(path)
	g.nodes[id] = node
	return node
}

// linkLocked records the edge from the node to toPath on both sides. The
// target node is created on demand so references ahead of their own scan
// still register.
func (g *Graph) linkLocked(from domain.FileIdentity, toPath string) {
	fromNode, ok := g.nodes[from]
	if !ok {
		return
	}
	toNode := g.ensureNodeLocked(toPath)
	fromNode.Uses[toNode.Identity] = struct{}{}
	toNode.UsedBy[from] = struct{}{}
}

// unlinkLocked removes the edge from → to on both sides.
func (g *Graph) unlinkLocked(from, to domain.FileIdentity) {
	if fromNode, ok := g.nodes[from]; ok {
		delete(fromNode.Uses, to)
	}
	if toNode, ok := g.nodes[to]; ok {
		delete(toNode.UsedBy, from)
	}
}

// EntryFiles returns the display paths of every buildable entry: non-partial
// nodes with no importers.
func (g *Graph) EntryFiles() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entries := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if node.IsEntry() {
			entries = append(entries, node.Display)
		}
	}
	return entries
}

// DisplayPath returns the original-case path recorded for an identity.
func (g *Graph) DisplayPath(id domain.FileIdentity) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return "", false
	}
	return node.Display, true
}

// Node returns a copy of the node for path. Edge sets are cloned so callers
// can inspect them without holding the graph lock.
func (g *Graph) Node(path string) (domain.StylesheetNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[domain.NewFileIdentity(path)]
	if !ok {
		return domain.StylesheetNode{}, false
	}
	return domain.StylesheetNode{
		Identity:  node.Identity,
		Display:   node.Display,
		IsPartial: node.IsPartial,
		Uses:      maps.Clone(node.Uses),
		UsedBy:    maps.Clone(node.UsedBy),
	}, true
}

// Contains reports whether the graph has a node for path.
func (g *Graph) Contains(path string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes[domain.NewFileIdentity(path)]
	return ok
}

// Len returns the number of known nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}
