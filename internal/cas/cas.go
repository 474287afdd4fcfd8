package cas

import (
	"context"
	"errors"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth"
)

// Classification of validation failures. Callers map both to the same
// user-facing outcome (no session); they differ only in logs and in the
// error code shown on the login page.
var (
	// ErrUnavailable means the CAS server could not be reached at all.
	ErrUnavailable = errors.New("cas: server unavailable")

	// ErrTicketRejected means CAS answered but did not vouch for the
	// ticket, or the answer was not a parseable CAS response.
	ErrTicketRejected = errors.New("cas: ticket rejected")
)

// Validator redeems a service ticket against CAS and returns a verified
// identity assertion. Implementations must never panic; every failure
// normalizes to a nil assertion and a classifying error.
//
// Exactly one implementation is selected at startup: the live
// serviceValidate client, or the development mock. The live path
// carries no mock logic.
type Validator interface {
	// Name returns the validator identifier used in logs.
	Name() string

	// Validate redeems ticket for the given service URL. serviceURL
	// must be the exact URL the CAS login endpoint redirected back to.
	Validate(ctx context.Context, ticket, serviceURL string) (*auth.Assertion, error)
}
