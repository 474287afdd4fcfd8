package cas

import (
	"context"
	"fmt"
	"strings"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
)

// ticketPrefix is the service-ticket prefix CAS issues; the mock uses
// it as its only notion of a well-formed ticket.
const ticketPrefix = "ST-"

// MockValidator simulates CAS for development so the login flow can be
// exercised without a live SSO server. A ticket validates iff it starts
// with "ST-"; tickets containing "admin" resolve to the fixed admin
// identity, everything else to the fixed client identity.
//
// This validator must never be wired in a production configuration.
type MockValidator struct{}

func NewMockValidator() *MockValidator {
	logger.Warn("cas mock validator enabled, do not use in production", nil)
	return &MockValidator{}
}

func (v *MockValidator) Name() string {
	return "cas-mock"
}

func (v *MockValidator) Validate(ctx context.Context, ticket, serviceURL string) (*auth.Assertion, error) {

	if !strings.HasPrefix(ticket, ticketPrefix) {
		return nil, fmt.Errorf("%w: malformed mock ticket", ErrTicketRejected)
	}

	if strings.Contains(ticket, "admin") {
		return &auth.Assertion{
			Email:       "karl.wennerstrom@uc.cl",
			DisplayName: "Karl Wennerström",
			GivenName:   "Karl",
			Surname:     "Wennerström",
			Department:  "Dirección de Informática",
			Title:       "Administrador",
		}, nil
	}

	return &auth.Assertion{
		Email:       "cliente@uc.cl",
		DisplayName: "Cliente de Prueba",
		GivenName:   "Cliente",
		Surname:     "de Prueba",
	}, nil
}
