package compose

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates
var templatesFS embed.FS

var scaffoldTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// Template bodies live under templates/ so the composer stays template-agnostic.
var defaultScaffoldEntries = []struct {
	path string
	name string
}{
	{"package.json", "package.json.tmpl"},
	{".env.example", "env.example.tmpl"},
	{"README.md", "readme.md.tmpl"},
	{"lib/sdk.ts", "sdk.ts.tmpl"},
	{"next.config.mjs", "next.config.mjs.tmpl"},
	{"tsconfig.json", "tsconfig.json.tmpl"},
	{".gitignore", "gitignore.tmpl"},
}

// DefaultScaffold synthesizes the infrastructure files used when the caller
// supplies no scaffold of its own.
func DefaultScaffold(app AppMeta) []ScaffoldFile {
	desc := app.Description
	if desc == "" {
		desc = "A web application generated with Pagesmith."
	}
	data := struct {
		Name        string
		Slug        string
		Description string
	}{Name: app.Name, Slug: app.Slug(), Description: desc}

	out := make([]ScaffoldFile, 0, len(defaultScaffoldEntries))
	for _, e := range defaultScaffoldEntries {
		var b strings.Builder
		if err := scaffoldTemplates.ExecuteTemplate(&b, e.name, data); err != nil {
			// Templates are embedded and parsed at init; execution over a
			// plain struct cannot fail at runtime.
			panic(err)
		}
		out = append(out, ScaffoldFile{Path: e.path, Content: b.String(), Label: "default"})
	}
	return out
}
