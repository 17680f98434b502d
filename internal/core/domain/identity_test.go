package domain_test

import (
	"testing"

	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "forward slashes untouched",
			in:   "src/styles/main.scss",
			want: "src/styles/main.scss",
		},
		{
			name: "backslashes converted",
			in:   `src\styles\main.scss`,
			want: "src/styles/main.scss",
		},
		{
			name: "case folded",
			in:   "Src/Styles/Main.SCSS",
			want: "src/styles/main.scss",
		},
		{
			name: "trailing separator stripped",
			in:   "src/styles/",
			want: "src/styles",
		},
		{
			name: "trailing backslash stripped",
			in:   `src\styles\`,
			want: "src/styles",
		},
		{
			name: "drive letter preserved",
			in:   `C:\Projects\app\main.scss`,
			want: "c:/projects/app/main.scss",
		},
		{
			name: "unc double prefix preserved",
			in:   `\\Fileserver\Share\styles\main.scss`,
			want: "//fileserver/share/styles/main.scss",
		},
		{
			name: "bare root survives",
			in:   "/",
			want: "/",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NormalizePath(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Normalization is idempotent: applying it twice is the same as once.
func TestNormalizePath_Idempotent(t *testing.T) {
	paths := []string{
		"src/styles/main.scss",
		`SRC\Styles\`,
		`C:\Projects\`,
		`\\server\share\a\`,
		"//already/normal",
		"",
		"/",
	}

	for _, p := range paths {
		once := domain.NormalizePath(p)
		twice := domain.NormalizePath(once)
		assert.Equal(t, once, twice, "path %q", p)
	}
}

func TestFileIdentity_SamePathsShareIdentity(t *testing.T) {
	a := domain.NewFileIdentity(`Src\Styles\Main.scss`)
	b := domain.NewFileIdentity("src/styles/main.scss")

	assert.Equal(t, a, b)
	assert.Equal(t, "src/styles/main.scss", a.String())
}

func TestFileIdentity_Zero(t *testing.T) {
	var id domain.FileIdentity
	assert.True(t, id.IsZero())
	assert.Equal(t, "", id.String())

	id = domain.NewFileIdentity("a.scss")
	assert.False(t, id.IsZero())
}

func TestFileIdentity_TextRoundTrip(t *testing.T) {
	id := domain.NewFileIdentity(`Lib\Mixins.scss`)

	text, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "lib/mixins.scss", string(text))

	var decoded domain.FileIdentity
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, id, decoded)
}
