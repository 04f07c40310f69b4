package render

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-ecollection/pkg/members"
	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// Page copy.
const (
	PageTitle         = "Techinnover | Data Collection Form"
	PageHeading       = "e-Collection Form"
	AvatarPrompt      = "Click to Upload An Avatar"
	AvatarChange      = "Awesome ! Change Avatar"
	AddMemberLabel    = "Add A Family Member"
	RemoveMemberLabel = "Remove"
	MembersHeading    = "Family Members"
)

// FieldProps is everything the field component needs to draw one labeled
// input. Min and Max are empty unless the input is a bounded number.
type FieldProps struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// NewFieldProps binds a descriptor to a concrete input name and value.
func NewFieldProps(d model.FieldDescriptor, name, value string) FieldProps {
	props := FieldProps{
		ID:          fieldID(name),
		Name:        name,
		Label:       d.Label,
		Type:        d.Type,
		Value:       value,
		Placeholder: d.Placeholder,
	}
	if d.Bounded() {
		if d.Min != nil {
			props.Min = strconv.Itoa(*d.Min)
		}
		if d.Max != nil {
			props.Max = strconv.Itoa(*d.Max)
		}
	}
	return props
}

// AvatarView describes the avatar picker and its preview.
type AvatarView struct {
	Set        bool   `json:"set"`
	Label      string `json:"label"`
	Filename   string `json:"filename,omitempty"`
	MediaType  string `json:"media_type,omitempty"`
	Size       string `json:"size,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// MemberView is one family-member sub-form.
type MemberView struct {
	Index        int          `json:"index"`
	Heading      string       `json:"heading"`
	Fields       []FieldProps `json:"fields"`
	Removable    bool         `json:"removable"`
	RemoveAction string       `json:"remove_action,omitempty"`
}

// Routes are the endpoints the page posts to. RemoveMember is a format string
// taking the member index.
type Routes struct {
	Submit       string `json:"submit"`
	AddMember    string `json:"add_member"`
	RemoveMember string `json:"remove_member"`
	Avatar       string `json:"avatar"`
}

// DefaultRoutes matches the browser front end's router.
func DefaultRoutes() Routes {
	return Routes{
		Submit:       "/submit",
		AddMember:    "/members",
		RemoveMember: "/members/%d/delete",
		Avatar:       "/avatar",
	}
}

// Page is the complete view of the form at one instant.
type Page struct {
	Title          string         `json:"title"`
	Heading        string         `json:"heading"`
	Fields         []FieldProps   `json:"fields"`
	Avatar         AvatarView     `json:"avatar"`
	MembersHeading string         `json:"members_heading"`
	Members        []MemberView   `json:"members"`
	AddLabel       string         `json:"add_label"`
	RemoveLabel    string         `json:"remove_label"`
	Control        submit.Control `json:"control"`
	Routes         Routes         `json:"routes"`
}

// NewPage projects the form and submit control into a Page.
func NewPage(form model.PrimaryForm, control submit.Control, routes Routes) Page {
	page := Page{
		Title:          PageTitle,
		Heading:        PageHeading,
		MembersHeading: MembersHeading,
		AddLabel:       AddMemberLabel,
		RemoveLabel:    RemoveMemberLabel,
		Control:        control,
		Routes:         routes,
		Avatar:         newAvatarView(form.Avatar, routes.Avatar),
	}

	for _, d := range model.PrimaryFields() {
		value, _ := form.Get(d.Name)
		page.Fields = append(page.Fields, NewFieldProps(d, d.Name, value))
	}

	removable := members.CanRemove(form.FamilyMembers)
	for i, member := range form.FamilyMembers {
		view := MemberView{
			Index:     i,
			Heading:   fmt.Sprintf("Member: %d", i+1),
			Removable: removable,
		}
		if removable && routes.RemoveMember != "" {
			view.RemoveAction = fmt.Sprintf(routes.RemoveMember, i)
		}
		for _, d := range model.FamilyMemberFields() {
			value, _ := member.Get(d.Name)
			view.Fields = append(view.Fields, NewFieldProps(d, submit.MemberKey(i, d.Name), value))
		}
		page.Members = append(page.Members, view)
	}
	return page
}

func newAvatarView(a *model.Avatar, previewURL string) AvatarView {
	if a == nil {
		return AvatarView{Label: AvatarPrompt}
	}
	return AvatarView{
		Set:        true,
		Label:      AvatarChange,
		Filename:   a.Filename,
		MediaType:  a.MediaType,
		Size:       humanize.Bytes(uint64(a.Size)),
		PreviewURL: previewURL,
	}
}

func fieldID(name string) string {
	out := make([]rune, 0, len(name)+3)
	out = append(out, 'e', 'c', '-')
	for _, r := range name {
		switch r {
		case '[':
			out = append(out, '-')
		case ']':
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
