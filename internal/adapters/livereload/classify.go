package livereload

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/ripplebuild/ripple/internal/core/domain"
)

// Classify applies the suppression rules to a changed output path and, when
// the change survives them, picks the notification kind. Rules run in
// order: compiler byproducts are always suppressed, template/markup output
// is suppressed by policy, then any configured extension exclusions apply.
// Whatever remains is classified by extension: stylesheet extensions map to
// a style update, everything else to a full reload.
func Classify(path string, styleExtensions, excludeExtensions []string) (domain.NotifyKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == domain.SourceMapExtension {
		return "", false
	}
	if slices.Contains(domain.MarkupExtensions, ext) {
		return "", false
	}
	if slices.Contains(excludeExtensions, ext) {
		return "", false
	}

	if ext == domain.CSSExtension || slices.Contains(styleExtensions, ext) {
		return domain.KindStyleUpdate, true
	}
	return domain.KindFullReload, true
}

// DisplayPath converts a changed path into the form broadcast to clients:
// relative to the output root, forward slashes, no leading prefix.
func DisplayPath(outputRoot, path string) string {
	rel, err := filepath.Rel(outputRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Outside the output root; fall back to the bare filename.
		return filepath.ToSlash(filepath.Base(path))
	}
	return filepath.ToSlash(rel)
}
