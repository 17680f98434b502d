package domain

// NotifyKind classifies a live-update notification.
type NotifyKind string

const (
	// KindStyleUpdate tells clients to hot-swap a stylesheet in place.
	KindStyleUpdate NotifyKind = "style-update"
	// KindFullReload tells clients to reload the whole page.
	KindFullReload NotifyKind = "full-reload"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "ripple.yaml"

	// CSSExtension is the extension of compiled stylesheet output.
	CSSExtension = ".css"

	// SourceMapExtension marks compiler byproducts that are never broadcast.
	SourceMapExtension = ".map"

	// IndexBaseName is the basename probed when a reference points at a
	// directory instead of a file.
	IndexBaseName = "index"

	// DirPerm is the default permission for created directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for written output files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStyleExtensions are the stylesheet source extensions recognized
// when the configuration does not override them.
var DefaultStyleExtensions = []string{".scss", ".sass"}

// DefaultScriptExtensions are the script source extensions routed to the
// bundler when the configuration does not override them.
var DefaultScriptExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs"}

// MarkupExtensions are template/markup outputs suppressed from broadcasts
// by policy.
var MarkupExtensions = []string{".html", ".htm"}

// DefaultSkipDirectories are directories never watched or scanned.
var DefaultSkipDirectories = []string{".git", ".jj", "node_modules"}
