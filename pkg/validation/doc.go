// Package validation holds the pure checks run before a submission leaves the
// client: family-member completeness, the ordered submission rules and the age
// computation they depend on.
package validation
