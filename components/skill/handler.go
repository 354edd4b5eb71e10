package skill

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	cacheControl        = "public, max-age=3600"
	msgNotFound         = "File not found"
)

// RawHandler serves the markdown file verbatim.
func RawHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		body, err := read(opts)
		if err != nil {
			notFound(w, opts.Logger, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeMarkdown)
		w.Header().Set("Cache-Control", cacheControl)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

// PageHandler renders the markdown file as a sanitized HTML page.
func PageHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	policy := bluemonday.UGCPolicy()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Renderer == nil {
			opts.Logger.Error("skill page requested without a renderer")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		source, err := read(opts)
		if err != nil {
			notFound(w, opts.Logger, err)
			return
		}
		page, err := opts.Renderer.Skill(r.Context(), string(policy.SanitizeBytes(ToHTML(source))))
		if err != nil {
			opts.Logger.Error("render skill page", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", opts.Renderer.ContentType())
		w.Header().Set("Cache-Control", cacheControl)
		_, _ = w.Write(page)
	})
}

// ToHTML converts markdown to unsanitized HTML.
func ToHTML(source []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML(source, p, renderer)
}

func read(opts Options) ([]byte, error) {
	return os.ReadFile(opts.Path)
}

func notFound(w http.ResponseWriter, logger *zap.Logger, err error) {
	if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("read skill document", zap.Error(err))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(msgNotFound))
}
