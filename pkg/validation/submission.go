package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-ecollection/pkg/model"
)

// ValidateSubmission runs the submission checks in order and returns the first
// failure, or nil when the form may be sent. now is the caller's clock; its
// location is used to read the birth date.
func ValidateSubmission(form model.PrimaryForm, now time.Time) error {
	if err := validatorInstance().Struct(form); err != nil {
		return ErrMissingRequiredField
	}

	if !Complete(form.FamilyMembers...) {
		return ErrIncompleteFamilyMember
	}

	if !EmailShape(form.Email) {
		return ErrInvalidEmailShape
	}

	birth, err := ParseDate(form.BirthDate, now.Location())
	if err != nil {
		// An unreadable date can never agree with the entered age.
		return ErrAgeMismatch
	}
	if !Midnight(birth).Before(Midnight(now)) {
		return ErrFutureOrPresentBirthDate
	}

	actual := Age(birth, now)
	entered, err := strconv.ParseFloat(strings.TrimSpace(form.Age), 64)
	if err != nil || entered != float64(actual) {
		return ErrAgeMismatch
	}

	if actual < model.MinApplicantAge || actual > model.MaxApplicantAge {
		return ErrAgeOutOfRange
	}
	return nil
}

// EmailShape checks that the address contains both "@" and ".". It is a shape
// check only.
func EmailShape(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
