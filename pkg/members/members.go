// Package members manages the ordered family-member list. Every operation
// returns a fresh slice and leaves its input untouched.
package members

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-ecollection/pkg/model"
	"github.com/goliatone/go-ecollection/pkg/validation"
)

// ErrIndexOutOfRange is returned when an update targets a missing entry.
var ErrIndexOutOfRange = errors.New("members: index out of range")

// Add appends a blank entry when every existing entry is complete. Otherwise
// it returns validation.ErrIncompleteFamilyMember and the input unchanged.
func Add(list []model.FamilyMember) ([]model.FamilyMember, error) {
	if !validation.Complete(list...) {
		return list, validation.ErrIncompleteFamilyMember
	}
	next := make([]model.FamilyMember, len(list), len(list)+1)
	copy(next, list)
	return append(next, model.FamilyMember{}), nil
}

// Remove drops the entry at index. Out-of-range indexes yield an unchanged
// copy. Callers must check CanRemove first; Remove does not protect the last
// entry.
func Remove(list []model.FamilyMember, index int) []model.FamilyMember {
	next := make([]model.FamilyMember, 0, len(list))
	for i, member := range list {
		if i == index {
			continue
		}
		next = append(next, member)
	}
	return next
}

// Update replaces a single field on the entry at index.
func Update(list []model.FamilyMember, index int, field, value string) ([]model.FamilyMember, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	updated, err := list[index].With(field, value)
	if err != nil {
		return list, err
	}
	next := make([]model.FamilyMember, len(list))
	copy(next, list)
	next[index] = updated
	return next, nil
}

// CanRemove reports whether a removal control should be offered.
func CanRemove(list []model.FamilyMember) bool {
	return len(list) > 1
}
