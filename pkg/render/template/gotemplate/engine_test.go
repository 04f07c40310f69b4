package gotemplate_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-ecollection/pkg/render/template/gotemplate"
)

type greeting struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }} x{{ count|floatformat }}")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"escape.tmpl":     {Data: []byte("{{ name }}")},
		"trim.tmpl":       {Data: []byte("[{{ name|trim }}]")},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateFromStruct(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	got, err := engine.RenderTemplate("hello", greeting{Name: "Ada", Count: 2}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada x2" {
		t.Fatalf("unexpected output %q", got)
	}
	if out.String() != got {
		t.Fatalf("writer mismatch: %q", out.String())
	}
}

func TestEngine_Autoescape(t *testing.T) {
	got, err := newEngine(t).RenderTemplate("escape.tmpl", map[string]any{"name": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "&lt;b&gt;x&lt;/b&gt;" {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_FiltersAndStrings(t *testing.T) {
	engine := newEngine(t)
	if got, _ := engine.RenderTemplate("trim", map[string]any{"name": "  Ada "}); got != "[Ada]" {
		t.Fatalf("trim filter: %q", got)
	}

	err := engine.RegisterFilter("ec_shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("ec_shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderString("{{ name|ec_shout_test }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_NumbersArriveAsFloats(t *testing.T) {
	got, err := newEngine(t).RenderString("{{ n }}|{{ n|floatformat }}|{{ half|floatformat }}", map[string]any{"n": 3, "half": 0.5})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "3.000000|3|0.5" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_BaseDirWinsOverFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("From disk {{ name }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(fstest.MapFS{"hello.tmpl": {Data: []byte("From fs")}}),
		gotemplate.WithBaseDir(dir),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "From disk Ada" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_MissingBaseDir(t *testing.T) {
	if _, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(t.TempDir(), "nope"))); err == nil {
		t.Fatalf("expected error for a missing template directory")
	}
}
