package text_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/render"
	"github.com/goliatone/go-ecollection/pkg/renderers/text"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

func TestRender_Review(t *testing.T) {
	form := model.PrimaryForm{
		Firstname: "Jane",
		Lastname:  "O'Neil",
		Email:     "jane@example.com",
		Age:       "30",
		Avatar:    &model.Avatar{Filename: "me.png", MediaType: "image/png", Size: 1500},
		FamilyMembers: []model.FamilyMember{
			{Name: "John", Relationship: "Brother", Age: "12"},
		},
	}
	page := render.NewPage(form, submit.ControlFor(submit.StateIdle), render.DefaultRoutes())

	r, err := text.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := r.Render(context.Background(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `e-Collection Form
First Name: Jane
Last Name: O'Neil
Age: 30
Email Address: jane@example.com
Date: -
Avatar: me.png (image/png, 1.5 kB)
Family Members:
  Member: 1
    Name: John
    Relationship: Brother
    Age: 12
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("review mismatch (-want +got):\n%s", diff)
	}
}
