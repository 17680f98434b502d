// Package graph maintains the stylesheet dependency graph: reference
// extraction, resolution against the filesystem, and invalidation of entry
// files when a source changes.
package graph

import "regexp"

var (
	// lineCommentRE matches single-line comments through end of line.
	lineCommentRE = regexp.MustCompile(`(?m)//[^\n]*`)

	// blockCommentRE matches block comments that open and close on the same
	// line. The dot deliberately does not cross newlines: a directive inside
	// a multi-line block comment is still extracted. Full lexical comment
	// scanning is out of scope; the behavior is pinned by a test.
	blockCommentRE = regexp.MustCompile(`/\*.*?\*/`)

	// referenceRE captures the quoted path after an inclusion directive.
	// Trailing clauses (as, show, hide, with) are ignored.
	referenceRE = regexp.MustCompile(`@(?:import|use|forward)\s+["']([^"']+)["']`)
)

// ExtractReferences returns the raw reference strings of every inclusion
// directive in sourceText, in source order. Directives inside single-line
// comments or single-line block comments are skipped.
func ExtractReferences(sourceText string) []string {
	stripped := blockCommentRE.ReplaceAllString(sourceText, "")
	stripped = lineCommentRE.ReplaceAllString(stripped, "")

	matches := referenceRE.FindAllStringSubmatch(stripped, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}
