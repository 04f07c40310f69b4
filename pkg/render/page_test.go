package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

func TestNewPage_BlankForm(t *testing.T) {
	page := render.NewPage(model.NewPrimaryForm(), submit.ControlFor(submit.StateIdle), render.DefaultRoutes())

	if page.Title != "Techinnover | Data Collection Form" || page.Heading != "e-Collection Form" {
		t.Fatalf("unexpected page copy: %q / %q", page.Title, page.Heading)
	}
	if page.Avatar.Set || page.Avatar.Label != "Click to Upload An Avatar" {
		t.Fatalf("unexpected avatar view: %+v", page.Avatar)
	}
	if len(page.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(page.Members))
	}
	member := page.Members[0]
	if member.Heading != "Member: 1" || member.Removable || member.RemoveAction != "" {
		t.Fatalf("single member must not be removable: %+v", member)
	}

	var names []string
	for _, f := range member.Fields {
		names = append(names, f.Name)
	}
	want := []string{"familyMembers[0][name]", "familyMembers[0][relationship]", "familyMembers[0][age]"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("member field names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPage_FieldProps(t *testing.T) {
	form, _ := model.NewPrimaryForm().WithField(model.FieldFirstname, "Jane")
	page := render.NewPage(form, submit.ControlFor(submit.StateIdle), render.DefaultRoutes())

	want := []render.FieldProps{
		{ID: "ec-firstname", Name: "firstname", Label: "First Name", Type: "text", Value: "Jane", Placeholder: "Jane"},
		{ID: "ec-lastname", Name: "lastname", Label: "Last Name", Type: "text", Placeholder: "Doe"},
		{ID: "ec-age", Name: "age", Label: "Age", Type: "number", Min: "18", Max: "65"},
		{ID: "ec-email", Name: "email", Label: "Email Address", Type: "email", Placeholder: "johndoe@gmail.com"},
		{ID: "ec-birth_date", Name: "birth_date", Label: "Date", Type: "date"},
	}
	if diff := cmp.Diff(want, page.Fields); diff != "" {
		t.Fatalf("field props mismatch (-want +got):\n%s", diff)
	}

	memberAge := page.Members[0].Fields[2]
	if memberAge.Type != "number" || memberAge.Min != "" || memberAge.Max != "" {
		t.Fatalf("member age must be an unbounded number: %+v", memberAge)
	}
}

func TestNewPage_MembersAndAvatar(t *testing.T) {
	form := model.NewPrimaryForm().
		WithFamilyMembers([]model.FamilyMember{{Name: "A"}, {Name: "B"}}).
		WithAvatar(&model.Avatar{Filename: "me.png", MediaType: "image/png", Size: 2048})

	page := render.NewPage(form, submit.ControlFor(submit.StateSubmitting), render.DefaultRoutes())

	if page.Members[1].Heading != "Member: 2" || page.Members[1].RemoveAction != "/members/1/delete" {
		t.Fatalf("unexpected second member: %+v", page.Members[1])
	}
	want := render.AvatarView{
		Set:        true,
		Label:      "Awesome ! Change Avatar",
		Filename:   "me.png",
		MediaType:  "image/png",
		Size:       "2.0 kB",
		PreviewURL: "/avatar",
	}
	if diff := cmp.Diff(want, page.Avatar); diff != "" {
		t.Fatalf("avatar view mismatch (-want +got):\n%s", diff)
	}
	if page.Control.Label != "Loading..." || page.Control.Enabled {
		t.Fatalf("expected loading control, got %+v", page.Control)
	}
}
