package html

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// ThemeName is the built-in brand manifest name.
	ThemeName = "syntrophic"
	// VariantDark is the default variant, white on black.
	VariantDark = "dark"
	// VariantLight inverts the palette.
	VariantLight = "light"
)

// DefaultManifest returns the built-in brand manifest.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-background": "#000000",
			"color-surface":    "#030712",
			"color-foreground": "#ffffff",
			"color-muted":      "#9ca3af",
			"color-border":     "#1f2937",
			"color-accent":     "#3b82f6",
			"color-accent-alt": "#a855f7",
			"color-error":      "#f87171",
			"font-body":        "system-ui, sans-serif",
			"font-mono":        "ui-monospace, monospace",
			"radius":           "12px",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "site.css",
				"logo":       "logo.svg",
			},
		},
		Variants: map[string]theme.Variant{
			VariantDark: {},
			VariantLight: {
				Tokens: map[string]string{
					"color-background": "#ffffff",
					"color-surface":    "#f9fafb",
					"color-foreground": "#111827",
					"color-muted":      "#4b5563",
					"color-border":     "#e5e7eb",
				},
			},
		},
	}
}

// ResolveTheme flattens manifest and the named variant into a renderer
// configuration. Variant tokens and asset files override the base ones and
// every token is exposed as a `--<token>` CSS variable.
func ResolveTheme(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("html: theme manifest is nil")
	}
	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	variant = strings.TrimSpace(variant)
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", manifest.Name, variant)
		}
		tokens = mergeStringMap(tokens, v.Tokens)
		partials = mergeStringMap(partials, v.Templates)
		files = mergeStringMap(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return path.Join("/", prefix, file)
		},
	}, nil
}

// SelectTheme resolves name/variant through a go-theme selector, for callers
// that keep their manifests in a theme registry.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("html: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("html: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("html: theme %q not found", name)
	}
	return ResolveTheme(selection.Manifest, selection.Variant)
}

type themeContext struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"cssVarsStyle"`
	Stylesheet   string `json:"stylesheet"`
	Logo         string `json:"logo"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL("stylesheet")
		ctx.Logo = cfg.AssetURL("logo")
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(base, override map[string]string) map[string]string {
	for key, value := range override {
		base[key] = value
	}
	return base
}
