package html

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func TestResolveTheme_VariantOverridesTokens(t *testing.T) {
	cfg, err := ResolveTheme(DefaultManifest(), VariantLight)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != ThemeName || cfg.Variant != VariantLight {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.CSSVars["--color-background"]; got != "#ffffff" {
		t.Fatalf("expected light background, got %q", got)
	}
	if got := cfg.CSSVars["--color-accent"]; got != "#3b82f6" {
		t.Fatalf("expected base accent to survive, got %q", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/site.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected unknown asset to resolve empty, got %q", got)
	}
}

func TestResolveTheme_UnknownVariant(t *testing.T) {
	if _, err := ResolveTheme(DefaultManifest(), "sepia"); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
	if _, err := ResolveTheme(nil, ""); err == nil {
		t.Fatalf("expected nil manifest to fail")
	}
}

func TestDefaultManifest_Registers(t *testing.T) {
	registry := theme.NewRegistry()
	if err := registry.Register(DefaultManifest()); err != nil {
		t.Fatalf("register manifest: %v", err)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestSelectTheme(t *testing.T) {
	manifest := DefaultManifest()
	cfg, err := SelectTheme(stubSelector{selection: &theme.Selection{
		Theme:    ThemeName,
		Variant:  VariantDark,
		Manifest: manifest,
	}}, ThemeName, VariantDark)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff(manifest.Tokens, cfg.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	if _, err := SelectTheme(stubSelector{err: errors.New("boom")}, ThemeName, ""); err == nil {
		t.Fatalf("expected selector error to propagate")
	}
	if _, err := SelectTheme(stubSelector{}, ThemeName, ""); err == nil {
		t.Fatalf("expected missing selection to fail")
	}
}

func TestRenderer_WithThemeVariant(t *testing.T) {
	cfg, err := ResolveTheme(DefaultManifest(), VariantLight)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	r := newRenderer(t, WithTheme(cfg))
	out, err := r.Gallery(context.Background(), []Feature{{Title: "Only", Description: "One"}})
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `data-variant="light"`) || !strings.Contains(html, "--color-background: #ffffff;") {
		t.Fatalf("expected light variant in output")
	}
	if strings.Contains(html, "SOC 2") {
		t.Fatalf("expected custom feature list to replace defaults")
	}
}
