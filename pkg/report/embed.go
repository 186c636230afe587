package report

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded report templates so callers can render
// them through their own engine or ship customized copies.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to the raw FS so the templates
		// stay reachable under their prefixed names.
		return embeddedTemplates
	}
	return sub
}
