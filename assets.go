package syntrophic

import (
	"io/fs"

	"github.com/goliatone/go-syntrophic/pkg/catalog"
	"github.com/goliatone/go-syntrophic/pkg/notify"
	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}

// EmailTemplates exposes the notification email templates.
func EmailTemplates() fs.FS {
	return notify.TemplatesFS()
}

// CatalogFS exposes the bundled step catalog.
func CatalogFS() fs.FS {
	return catalog.EmbeddedFS()
}

// StaticAssetsFS exposes the stylesheet and logo referenced by the page
// templates.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(syntrophic.StaticAssetsFS()),
//	  ),
//	)
func StaticAssetsFS() fs.FS {
	return htmlrenderer.StaticFS()
}
