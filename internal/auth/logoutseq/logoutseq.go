package logoutseq

import (
	"context"
	"net/url"
	"strings"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/cas"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/session"
)

// Reason describes why a logout happened. It travels on the redirect
// so the login page can explain the situation.
type Reason string

const (
	ReasonNormal         Reason = "normal"
	ReasonCAS            Reason = "cas"
	ReasonSessionExpired Reason = "session_expired"
	ReasonAdminForced    Reason = "admin_forced"
	ReasonSecurity       Reason = "security"
)

// Post-logout landing targets.
const (
	DefaultRedirectPath = "/login?message=logout_success"
	ErrorRedirectPath   = "/login?error=logout_error"
)

// NormalizeReason maps unknown values to ReasonNormal. Fail-open to
// the safest default, not an error.
func NormalizeReason(raw string) Reason {
	switch Reason(raw) {
	case ReasonNormal, ReasonCAS, ReasonSessionExpired, ReasonAdminForced, ReasonSecurity:
		return Reason(raw)
	default:
		return ReasonNormal
	}
}

// Request carries everything the sequencer needs from the HTTP layer.
type Request struct {
	SessionID    string
	Reason       Reason
	RedirectHint string
	Force        bool
	Host         string // host of the current request, for redirect validation
}

// Sequencer tears down the local session and computes where to send
// the browser, optionally routing through CAS single logout.
type Sequencer struct {
	sessions  session.Store
	logoutURL cas.LogoutURLBuilder // nil when CAS single logout is not configured
}

func New(sessions session.Store, logoutURL cas.LogoutURLBuilder) *Sequencer {
	return &Sequencer{
		sessions:  sessions,
		logoutURL: logoutURL,
	}
}

// Logout always completes: every path returns a safe redirect and the
// local session is gone (or was never there). Cookie expiry is the
// HTTP handler's half of the teardown.
func (s *Sequencer) Logout(ctx context.Context, req Request) string {

	reason := NormalizeReason(string(req.Reason))
	target := ValidateRedirect(req.RedirectHint, req.Host)

	if req.SessionID != "" {
		if err := s.sessions.Delete(ctx, req.SessionID); err != nil {
			logger.Error("session teardown failed", map[string]any{
				"error":  err.Error(),
				"reason": string(reason),
			})
			return ErrorRedirectPath
		}
	}

	logger.Info("logout", map[string]any{
		"reason": string(reason),
		"forced": req.Force,
	})

	// CAS-initiated or forced logouts end the SSO-wide session too,
	// with the validated local target as the CAS-side return.
	if reason == ReasonCAS || req.Force {
		if s.logoutURL == nil {
			return target
		}

		casURL, err := s.logoutURL.LogoutURL(target)
		if err != nil {
			logger.Warn("cas single logout unavailable, using local redirect", map[string]any{
				"error": err.Error(),
			})
			return target
		}
		return casURL
	}

	return target
}

// ValidateRedirect decides whether a caller-supplied redirect may be
// honored. Only well-formed URLs that are root-relative paths or share
// the current request's host pass; everything else falls back to the
// default. This is the open-redirect guard and must stay strict.
func ValidateRedirect(hint, host string) string {
	if hint == "" {
		return DefaultRedirectPath
	}

	// Root-relative path. "//host" is scheme-relative, not a path.
	if strings.HasPrefix(hint, "/") && !strings.HasPrefix(hint, "//") {
		if _, err := url.Parse(hint); err != nil {
			return DefaultRedirectPath
		}
		return hint
	}

	u, err := url.Parse(hint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return DefaultRedirectPath
	}

	if host != "" && u.Host == host {
		return hint
	}

	logger.Warn("rejected logout redirect target", map[string]any{
		"target": hint,
	})
	return DefaultRedirectPath
}
