package model

import (
	"errors"
	"fmt"
)

// Top-level field names, matching the transfer payload keys.
const (
	FieldFirstname = "firstname"
	FieldLastname  = "lastname"
	FieldEmail     = "email"
	FieldAge       = "age"
	FieldAvatar    = "avatar"
	FieldBirthDate = "birth_date"
)

// Family-member field names.
const (
	MemberFieldName         = "name"
	MemberFieldRelationship = "relationship"
	MemberFieldAge          = "age"
)

// ErrUnknownField is returned when a field name does not exist on the record.
var ErrUnknownField = errors.New("model: unknown field")

// Avatar is the binary file handle selected by the applicant. It is owned by
// the PrimaryForm holding it until the form is submitted.
type Avatar struct {
	Filename  string `json:"filename"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	Data      []byte `json:"-"`
}

// FamilyMember is one dependent's sub-record. All three fields must be filled
// for the record to count as complete.
type FamilyMember struct {
	Name         string `json:"name" validate:"truthy"`
	Relationship string `json:"relationship" validate:"truthy"`
	Age          string `json:"age" validate:"truthy"`
}

// Get returns the value stored under the given field name.
func (m FamilyMember) Get(field string) (string, error) {
	switch field {
	case MemberFieldName:
		return m.Name, nil
	case MemberFieldRelationship:
		return m.Relationship, nil
	case MemberFieldAge:
		return m.Age, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// With returns a copy of the record with a single field replaced.
func (m FamilyMember) With(field, value string) (FamilyMember, error) {
	switch field {
	case MemberFieldName:
		m.Name = value
	case MemberFieldRelationship:
		m.Relationship = value
	case MemberFieldAge:
		m.Age = value
	default:
		return m, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return m, nil
}

// PrimaryForm is the applicant's top-level form state.
type PrimaryForm struct {
	Firstname     string         `json:"firstname" validate:"required"`
	Lastname      string         `json:"lastname" validate:"required"`
	Email         string         `json:"email" validate:"required"`
	Age           string         `json:"age" validate:"required"`
	Avatar        *Avatar        `json:"avatar" validate:"required"`
	BirthDate     string         `json:"birth_date" validate:"required"`
	FamilyMembers []FamilyMember `json:"familyMembers"`
}

// NewPrimaryForm returns the initial blank shape: empty scalars, no avatar and
// exactly one blank family member.
func NewPrimaryForm() PrimaryForm {
	return PrimaryForm{
		FamilyMembers: []FamilyMember{{}},
	}
}

// Get returns the value of a scalar top-level field. The avatar is reported
// by filename.
func (f PrimaryForm) Get(field string) (string, error) {
	switch field {
	case FieldFirstname:
		return f.Firstname, nil
	case FieldLastname:
		return f.Lastname, nil
	case FieldEmail:
		return f.Email, nil
	case FieldAge:
		return f.Age, nil
	case FieldBirthDate:
		return f.BirthDate, nil
	case FieldAvatar:
		if f.Avatar == nil {
			return "", nil
		}
		return f.Avatar.Filename, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// WithField returns a new form with one scalar field replaced. The avatar is
// not a scalar; use WithAvatar.
func (f PrimaryForm) WithField(field, value string) (PrimaryForm, error) {
	next := f.clone()
	switch field {
	case FieldFirstname:
		next.Firstname = value
	case FieldLastname:
		next.Lastname = value
	case FieldEmail:
		next.Email = value
	case FieldAge:
		next.Age = value
	case FieldBirthDate:
		next.BirthDate = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return next, nil
}

// WithAvatar returns a new form holding the provided avatar handle.
func (f PrimaryForm) WithAvatar(avatar *Avatar) PrimaryForm {
	next := f.clone()
	next.Avatar = avatar
	return next
}

// WithFamilyMembers returns a new form holding a copy of members.
func (f PrimaryForm) WithFamilyMembers(members []FamilyMember) PrimaryForm {
	next := f
	next.FamilyMembers = append([]FamilyMember(nil), members...)
	return next
}

func (f PrimaryForm) clone() PrimaryForm {
	next := f
	next.FamilyMembers = append([]FamilyMember(nil), f.FamilyMembers...)
	return next
}
