package git

import (
	"path"
	"strings"
)

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// DisplayName returns the author name, falling back to the email.
func (a AuthorInfo) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Email
}

// TypeMode controls how the type column is derived.
type TypeMode int

const (
	// TypeModeExtension uses the file extension without the dot ("js", "css").
	TypeModeExtension TypeMode = iota
	// TypeModeLanguage uses the detected language name ("JavaScript").
	TypeModeLanguage
)

// ParseTypeMode parses "extension" or "language".
func ParseTypeMode(s string) (TypeMode, bool) {
	switch strings.ToLower(s) {
	case "", "extension", "ext":
		return TypeModeExtension, true
	case "language", "lang":
		return TypeModeLanguage, true
	default:
		return TypeModeExtension, false
	}
}

// String returns a string representation of the type mode.
func (m TypeMode) String() string {
	switch m {
	case TypeModeExtension:
		return "extension"
	case TypeModeLanguage:
		return "language"
	default:
		return "unknown"
	}
}

// ReadOptions configures the blame reader.
type ReadOptions struct {
	RepoPath    string
	Branch      string   // Empty means HEAD
	Include     []string // Glob patterns to include
	Exclude     []string // Glob patterns to exclude
	TypeMode    TypeMode
	IndentWidth int  // Spaces per depth level; 0 means 2
	SkipVendor  bool // Skip vendored and generated paths
}

// ExtensionType returns the file extension without the dot, or the lowercased
// base name for files without one ("Makefile" -> "makefile").
func ExtensionType(name string) string {
	base := path.Base(name)
	ext := path.Ext(base)
	if ext == "" || ext == base {
		return strings.ToLower(base)
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Depth returns the indentation level of a line: one per leading tab, plus
// leading spaces divided by indentWidth.
func Depth(text string, indentWidth int) int {
	if indentWidth <= 0 {
		indentWidth = 2
	}
	tabs, spaces := 0, 0
	for _, r := range text {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/indentWidth
		}
	}
	return tabs + spaces/indentWidth
}
