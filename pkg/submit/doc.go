// Package submit turns a validated PrimaryForm into a multipart request for
// the remote e-Collection API and maps the outcome onto notifications.
//
// The Pipeline walks Idle → Validating → (Rejected | Submitting) →
// (Succeeded | Failed) → Idle for every attempt. Only one attempt may be in
// flight; a second Submit while the first is pending returns ErrInFlight. The
// submit control shown to the user is derived from the current state with
// ControlFor rather than toggled imperatively.
package submit
