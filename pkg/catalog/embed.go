package catalog

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-syntrophic/pkg/model"
)

//go:embed data/*
var embedded embed.FS

// EmbeddedFS returns the bundled catalog files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// the embed directive guarantees the subpath exists
		panic(err)
	}
	return sub
}

var (
	defaultOnce    sync.Once
	defaultCatalog *model.Catalog
	defaultErr     error
)

// Default returns the embedded catalog. The result is shared and must not be
// mutated.
func Default() (*model.Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(EmbeddedFS(), "steps.yaml")
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for package initialisation paths.
func MustDefault() *model.Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
