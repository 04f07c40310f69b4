package vanilla_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/notify"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/renderers/vanilla"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderPage(t *testing.T, form model.PrimaryForm, state submit.State, opts render.RenderOptions) string {
	t.Helper()
	page := render.NewPage(form, submit.ControlFor(state), render.DefaultRoutes())
	out, err := newRenderer(t).Render(context.Background(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRender_BlankPage(t *testing.T) {
	html := renderPage(t, model.NewPrimaryForm(), submit.StateIdle, render.RenderOptions{})

	assertContains(t, html,
		"<title>Techinnover | Data Collection Form</title>",
		"e-Collection Form",
		"Click to Upload An Avatar",
		"Member: 1",
		`name="familyMembers[0][relationship]"`,
		`placeholder="johndoe@gmail.com"`,
		`formaction="/members"`,
		"Add A Family Member",
		`enctype="multipart/form-data"`,
		">Submit</button>",
		`class="ec-submit ec-submit--shadow"`,
		`style="opacity: 1"`,
		".ec-card",
	)
	if strings.Contains(html, `class="ec-member__remove"`) {
		t.Fatalf("remove control must be hidden for a single member")
	}
	if strings.Contains(html, " disabled") {
		t.Fatalf("submit must be enabled when idle")
	}
}

func TestRender_RemoveControlsWithSeveralMembers(t *testing.T) {
	form := model.NewPrimaryForm().WithFamilyMembers([]model.FamilyMember{{Name: "A"}, {Name: "B"}})
	html := renderPage(t, form, submit.StateIdle, render.RenderOptions{})

	assertContains(t, html,
		`formaction="/members/0/delete" formnovalidate>Remove</button>`,
		`formaction="/members/1/delete" formnovalidate>Remove</button>`,
		`<fieldset class="ec-member" data-index="1">`,
		"Member: 2",
	)
	if got := strings.Count(html, ">Remove</button>"); got != 2 {
		t.Fatalf("expected two remove buttons, got %d", got)
	}
}

func TestRender_LoadingControl(t *testing.T) {
	html := renderPage(t, model.NewPrimaryForm(), submit.StateSubmitting, render.RenderOptions{})
	assertContains(t, html, ">Loading...</button>", `class="ec-submit" type="submit" style="opacity: 0.5" disabled>`)
	if strings.Contains(html, `class="ec-submit ec-submit--shadow"`) {
		t.Fatalf("loading control must not carry a shadow")
	}
}

func TestRender_AvatarPreview(t *testing.T) {
	form := model.NewPrimaryForm().WithAvatar(&model.Avatar{Filename: "me.png", MediaType: "image/png", Size: 1500})
	html := renderPage(t, form, submit.StateIdle, render.RenderOptions{})
	assertContains(t, html, "Awesome ! Change Avatar", `src="/avatar"`, "me.png (1.5 kB)")
}

func TestRender_NotificationsAreSanitized(t *testing.T) {
	opts := render.RenderOptions{Notifications: []notify.Notification{
		{Level: notify.LevelError, Message: `Email <strong>taken</strong><script>alert(1)</script>`, Icon: notify.IconInfo},
		{Level: notify.LevelSuccess, Message: "Awesome !, submission received.", Icon: notify.IconCheck},
	}}
	html := renderPage(t, model.NewPrimaryForm(), submit.StateIdle, opts)

	assertContains(t, html,
		"Email <strong>taken</strong>",
		`<i class="pe-7s-info"></i>`,
		`ec-notification--success`,
		"Awesome !, submission received.",
	)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tags must be stripped:\n%s", html)
	}
}

func TestRender_ThemeCSSVars(t *testing.T) {
	provider, err := render.NewThemeProvider(render.DefaultTheme())
	if err != nil {
		t.Fatalf("theme provider: %v", err)
	}
	cfg, err := render.SelectTheme(provider, "", "dark")
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	html := renderPage(t, model.NewPrimaryForm(), submit.StateIdle, render.RenderOptions{Theme: cfg})
	assertContains(t, html, `data-theme="ecollection"`, `data-variant="dark"`, "--background: #1b1e24;", "--primary: #1f7aec;")
}

func TestRender_FieldComponent(t *testing.T) {
	form, err := model.NewPrimaryForm().WithField(model.FieldAge, "30")
	if err != nil {
		t.Fatalf("set age: %v", err)
	}
	form, err = form.WithField(model.FieldFirstname, `"><script>`)
	if err != nil {
		t.Fatalf("set firstname: %v", err)
	}
	html := renderPage(t, form, submit.StateIdle, render.RenderOptions{})

	assertContains(t, html,
		`<label class="ec-field__label" for="ec-age">Age</label>`,
		`id="ec-age" type="number" name="age" value="30" min="18" max="65">`,
		`id="ec-firstname" type="text" name="firstname" value="&quot;&gt;&lt;script&gt;" placeholder="Jane">`,
		`id="ec-familyMembers-0-age" type="number" name="familyMembers[0][age]" value="">`,
	)
	if strings.Contains(html, `"><script>`) {
		t.Fatalf("field values must be escaped:\n%s", html)
	}
}

func TestRender_ListActionsSkipBrowserValidation(t *testing.T) {
	html := renderPage(t, model.NewPrimaryForm(), submit.StateIdle, render.RenderOptions{})
	assertContains(t, html, `formaction="/members" formnovalidate>Add A Family Member</button>`)
}

func TestRender_ThemeStylesheetURL(t *testing.T) {
	manifest := render.DefaultTheme()
	manifest.Assets = theme.Assets{
		Prefix: "/assets",
		Files:  map[string]string{vanilla.ThemeStylesheetAsset: vanilla.StylesheetName},
	}
	provider, err := render.NewThemeProvider(manifest)
	if err != nil {
		t.Fatalf("theme provider: %v", err)
	}
	cfg, err := render.SelectTheme(provider, "", "")
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	html := renderPage(t, model.NewPrimaryForm(), submit.StateIdle, render.RenderOptions{Theme: cfg})
	assertContains(t, html, `<link rel="stylesheet" href="/assets/ecollection.css">`)
	if strings.Contains(html, ".ec-card {") {
		t.Fatalf("stylesheet must not be inlined when the theme provides one")
	}
}

func TestNew_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		vanilla.PageTemplate:  `{{ page.heading }}{% for field in page.fields %}|{% include "field.tmpl" with field=field %}{% endfor %}`,
		vanilla.FieldTemplate: `{{ field.name }}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	r, err := vanilla.New(vanilla.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := render.NewPage(model.NewPrimaryForm(), submit.ControlFor(submit.StateIdle), render.DefaultRoutes())
	out, err := r.Render(context.Background(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("e-Collection Form|firstname|lastname|age|email|birth_date", string(out)); diff != "" {
		t.Fatalf("custom templates mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_MissingTemplatesDir(t *testing.T) {
	if _, err := vanilla.New(vanilla.WithTemplatesDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for a missing templates directory")
	}
}
