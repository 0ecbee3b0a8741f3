package compose

import "strings"

// GeneratedFile is one file produced by the page generator. Read-only input.
type GeneratedFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// ScaffoldFile is one infrastructure file supplied by the caller, or
// synthesized by DefaultScaffold when the caller supplies none.
type ScaffoldFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Label   string `json:"label,omitempty"`
}

// File is one entry of the composed, conflict-resolved set to publish.
type File struct {
	Path    string
	Content string
}

type AppMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Slug is the package-manifest-safe form of the app name.
func (a AppMeta) Slug() string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(a.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "app"
	}
	return s
}
