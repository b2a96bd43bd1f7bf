package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "survey"

// DefaultManifest returns the built-in theme with a light base and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":      "#ffffff",
			"text":         "#1f2933",
			"accent":       "#2563eb",
			"error":        "#b91c1c",
			"border":       "#d2d6dc",
			"summary-bg":   "#f3f4f6",
			"radius":       "6px",
			"form-width":   "640px",
			"font-family":  "system-ui, sans-serif",
			"question-gap": "1rem",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":    "#111827",
					"text":       "#f9fafb",
					"accent":     "#60a5fa",
					"error":      "#f87171",
					"border":     "#374151",
					"summary-bg": "#1f2937",
				},
			},
		},
	}
}

// ResolveTheme validates manifest through a go-theme registry and merges the
// variant over the base. An empty variant selects the base tokens.
func ResolveTheme(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}

	variant = strings.TrimSpace(variant)
	tokens := copyStrings(manifest.Tokens)
	partials := copyStrings(manifest.Templates)
	files := copyStrings(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant != "" {
		override, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, variant)
		}
		tokens = mergeStrings(tokens, override.Tokens)
		partials = mergeStrings(partials, override.Templates)
		files = mergeStrings(files, override.Assets.Files)
		if override.Assets.Prefix != "" {
			prefix = override.Assets.Prefix
		}
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// CSSVarsStyle serialises the CSS custom properties of cfg as a
// declaration list, sorted by name.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+key] = value
	}
	return out
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStrings(base, override map[string]string) map[string]string {
	for key, value := range override {
		base[key] = value
	}
	return base
}
