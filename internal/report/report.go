// Package report contains the stakeholder report generators. Each generator
// is a pure function over immutable lookup tables and the aggregated
// dataset; unknown enum keys return ErrUnknownKey rather than panicking.
package report

import "errors"

// ErrUnknownKey is returned when a report is requested for a stakeholder,
// habitat, emergency, or sector value outside the known tables. Handlers
// translate it to a not-found response.
var ErrUnknownKey = errors.New("report: unknown key")
