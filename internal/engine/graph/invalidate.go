package graph

import (
	"fmt"

	"github.com/ripplebuild/ripple/internal/core/domain"
)

// EntryFilesAffectedBy walks importer edges from the changed file and
// returns the display paths of every entry file that must be recompiled.
// Non-partial nodes are sinks: they are collected and never expanded past,
// so a cycle that loops back into an entry still terminates with that entry.
// A changed file with no known node gets one single-file refresh and a
// retry; when it still has no node, or when the walk finds no entry at all,
// the file itself is returned so a best-effort standalone compile happens
// instead of silently dropping the change.
func (g *Graph) EntryFilesAffectedBy(path string) []string {
	id := domain.NewFileIdentity(path)

	if !g.Contains(path) {
		if err := g.RefreshOne(path); err != nil {
			g.logger.Warn(fmt.Sprintf("could not scan changed file %s: %v", path, err))
			return []string{path}
		}
		if !g.Contains(path) {
			return []string{path}
		}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var entries []string
	visited := map[domain.FileIdentity]struct{}{id: {}}
	queue := []domain.FileIdentity{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node, ok := g.nodes[current]
		if !ok {
			continue
		}

		if !node.IsPartial {
			entries = append(entries, node.Display)
			continue
		}

		for importer := range node.UsedBy {
			if _, seen := visited[importer]; seen {
				continue
			}
			visited[importer] = struct{}{}
			queue = append(queue, importer)
		}
	}

	if len(entries) == 0 {
		// Orphan partial; compile it standalone rather than ignore it.
		return []string{path}
	}
	return entries
}
