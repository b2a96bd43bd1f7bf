package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})
	registry.MustRegister(stubRenderer{name: "text"})

	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected unnamed renderer error")
	}

	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	fallback, err := registry.Get("")
	if err != nil || fallback.Name() != "html" {
		t.Fatalf("default renderer = %v, %v", fallback, err)
	}
	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if !registry.Has("text") || registry.Has("pdf") {
		t.Fatalf("unexpected Has results")
	}
}

func TestNormalizeHidden(t *testing.T) {
	got := render.NormalizeHidden(
		render.HiddenField{Name: "z", Value: "1"},
		render.CSRFToken("old"),
		render.HiddenField{Name: " ", Value: "dropped"},
		render.CSRFToken("new"),
	)
	want := []render.HiddenField{{Name: "_csrf", Value: "new"}, {Name: "z", Value: "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}
