package graph_test

import (
	"testing"

	"github.com/ripplebuild/ripple/internal/engine/graph"
	"github.com/stretchr/testify/assert"
)

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "import directive",
			source: `@import "variables";`,
			want:   []string{"variables"},
		},
		{
			name:   "use with namespace alias",
			source: `@use "colors" as c;`,
			want:   []string{"colors"},
		},
		{
			name:   "forward with visibility filter",
			source: `@forward "mixins" show respond-to;`,
			want:   []string{"mixins"},
		},
		{
			name:   "single quotes",
			source: `@use 'layout/grid';`,
			want:   []string{"layout/grid"},
		},
		{
			name: "multiple directives in source order",
			source: `@use "a";
@import "b";
@forward "c";`,
			want: []string{"a", "b", "c"},
		},
		{
			name:   "line comment skipped",
			source: "// @import \"ignored\"\n@import \"real\";",
			want:   []string{"real"},
		},
		{
			name:   "single-line block comment skipped",
			source: `/* @use "ignored" */ @use "real";`,
			want:   []string{"real"},
		},
		{
			name:   "no directives",
			source: "body { color: red; }",
			want:   nil,
		},
		{
			name:   "url import not matched",
			source: `@import url("http://example.com/font.css");`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, graph.ExtractReferences(tt.source))
		})
	}
}

// Comment stripping is regex based and bounded to single lines. A directive
// inside a multi-line block comment is therefore still extracted. This pins
// the documented behavior so a future change to it is deliberate.
func TestExtractReferences_MultiLineBlockCommentLimitation(t *testing.T) {
	source := "/*\n@import \"inside-comment\";\n*/\n@import \"real\";"

	assert.Equal(t, []string{"inside-comment", "real"}, graph.ExtractReferences(source))
}
