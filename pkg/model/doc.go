// Package model defines the e-Collection form records and the static field
// descriptors used to present them. Records are plain values: every change
// produces a new PrimaryForm through the With* helpers so state transitions
// stay observable and callers never share a mutable family-member slice.
//
// Field names match the transfer payload keys (firstname, birth_date,
// familyMembers[i][name], ...) so renderers and the submission pipeline can
// address fields by the same identifiers the remote API expects.
package model
