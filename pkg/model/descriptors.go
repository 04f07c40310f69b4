package model

// Input types understood by the presentational field component.
const (
	InputText   = "text"
	InputNumber = "number"
	InputEmail  = "email"
	InputDate   = "date"
	InputFile   = "file"
)

// FieldDescriptor is the static schema of a single input: its payload name,
// human label and input type. Min and Max only apply to number inputs.
type FieldDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type" yaml:"type"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Min         *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int   `json:"max,omitempty" yaml:"max,omitempty"`
}

// Bounded reports whether min/max attributes should be rendered.
func (d FieldDescriptor) Bounded() bool {
	return d.Type == InputNumber && (d.Min != nil || d.Max != nil)
}

// FamilyMemberFields describes every family-member sub-form, in display order.
func FamilyMemberFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: MemberFieldName, Label: "Name", Type: InputText},
		{Name: MemberFieldRelationship, Label: "Relationship", Type: InputText},
		{Name: MemberFieldAge, Label: "Age", Type: InputNumber},
	}
}

// Applicant age bounds, inclusive.
const (
	MinApplicantAge = 18
	MaxApplicantAge = 65
)

// PrimaryFields describes the scalar applicant inputs, in display order.
func PrimaryFields() []FieldDescriptor {
	minAge, maxAge := MinApplicantAge, MaxApplicantAge
	return []FieldDescriptor{
		{Name: FieldFirstname, Label: "First Name", Type: InputText, Placeholder: "Jane"},
		{Name: FieldLastname, Label: "Last Name", Type: InputText, Placeholder: "Doe"},
		{Name: FieldAge, Label: "Age", Type: InputNumber, Min: &minAge, Max: &maxAge},
		{Name: FieldEmail, Label: "Email Address", Type: InputEmail, Placeholder: "johndoe@gmail.com"},
		{Name: FieldBirthDate, Label: "Date", Type: InputDate},
	}
}
