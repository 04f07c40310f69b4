package validation

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingRequiredField     Kind = "missing_required_field"
	KindIncompleteFamilyMember   Kind = "incomplete_family_member"
	KindInvalidEmailShape        Kind = "invalid_email_shape"
	KindFutureOrPresentBirthDate Kind = "future_or_present_birth_date"
	KindAgeMismatch              Kind = "age_mismatch"
	KindAgeOutOfRange            Kind = "age_out_of_range"
)

// Error is a user-facing validation failure. Its message is shown verbatim in
// the notification sink.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Is matches any validation error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrMissingRequiredField = &Error{
		Kind:    KindMissingRequiredField,
		Message: "All fields are required",
	}
	ErrIncompleteFamilyMember = &Error{
		Kind:    KindIncompleteFamilyMember,
		Message: "Please complete all fields on previous family member forms",
	}
	ErrInvalidEmailShape = &Error{
		Kind:    KindInvalidEmailShape,
		Message: "Please enter a valid email",
	}
	ErrFutureOrPresentBirthDate = &Error{
		Kind:    KindFutureOrPresentBirthDate,
		Message: "Age must be in the past",
	}
	ErrAgeMismatch = &Error{
		Kind:    KindAgeMismatch,
		Message: "Provided age and date of birth do not match",
	}
	ErrAgeOutOfRange = &Error{
		Kind:    KindAgeOutOfRange,
		Message: "We apologize but this application is strictly for aged 18 - 65",
	}
)
