package logoutseq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/session"
)

type fakeBuilder struct {
	lastReturnTo string
	fail         bool
}

func (f *fakeBuilder) LogoutURL(returnTo string) (string, error) {
	if f.fail {
		return "", errors.New("cas unreachable")
	}
	f.lastReturnTo = returnTo
	return "https://sso.uc.cl/cas/logout?service=" + returnTo, nil
}

type failingStore struct {
	session.Store
}

func (failingStore) Delete(ctx context.Context, sessionID string) error {
	return errors.New("store unavailable")
}

func newStoreWithSession(t *testing.T, id string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: id,
		UserID:    "u-1",
		UserType:  "client",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	return store
}

func TestNormalizeReason(t *testing.T) {
	assert.Equal(t, ReasonCAS, NormalizeReason("cas"))
	assert.Equal(t, ReasonSecurity, NormalizeReason("security"))
	assert.Equal(t, ReasonNormal, NormalizeReason("normal"))

	// Unknown values fail open to normal.
	assert.Equal(t, ReasonNormal, NormalizeReason("bogus_value"))
	assert.Equal(t, ReasonNormal, NormalizeReason(""))
	assert.Equal(t, ReasonNormal, NormalizeReason("CAS"))
}

func TestValidateRedirect(t *testing.T) {
	// Different host is never honored.
	assert.Equal(t, DefaultRedirectPath,
		ValidateRedirect("https://evil.example/phish", "portal.uc.cl"))

	// Root-relative paths pass as-is.
	assert.Equal(t, "/client/dashboard",
		ValidateRedirect("/client/dashboard", "portal.uc.cl"))

	// Same-host absolute URLs pass.
	assert.Equal(t, "https://portal.uc.cl/admin/dashboard",
		ValidateRedirect("https://portal.uc.cl/admin/dashboard", "portal.uc.cl"))

	// Scheme-relative is not a root-relative path.
	assert.Equal(t, DefaultRedirectPath,
		ValidateRedirect("//evil.example/phish", "portal.uc.cl"))

	assert.Equal(t, DefaultRedirectPath, ValidateRedirect("", "portal.uc.cl"))
	assert.Equal(t, DefaultRedirectPath, ValidateRedirect("evil.example", "portal.uc.cl"))
}

func TestLogoutDeletesSessionAndUsesValidatedTarget(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	seq := New(store, &fakeBuilder{})

	target := seq.Logout(context.Background(), Request{
		SessionID:    "sid-1",
		Reason:       ReasonNormal,
		RedirectHint: "/client/dashboard",
		Host:         "portal.uc.cl",
	})

	assert.Equal(t, "/client/dashboard", target)

	sess, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogoutBogusReasonBehavesLikeNormal(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	builder := &fakeBuilder{}
	seq := New(store, builder)

	target := seq.Logout(context.Background(), Request{
		SessionID: "sid-1",
		Reason:    Reason("bogus_value"),
	})

	assert.Equal(t, DefaultRedirectPath, target)
	assert.Empty(t, builder.lastReturnTo, "bogus reason must not trigger CAS logout")
}

func TestLogoutCASReasonWrapsSingleLogout(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	builder := &fakeBuilder{}
	seq := New(store, builder)

	target := seq.Logout(context.Background(), Request{
		SessionID:    "sid-1",
		Reason:       ReasonCAS,
		RedirectHint: "/login",
		Host:         "portal.uc.cl",
	})

	assert.Equal(t, "https://sso.uc.cl/cas/logout?service=/login", target)
	assert.Equal(t, "/login", builder.lastReturnTo)
}

func TestLogoutForceWrapsSingleLogout(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	builder := &fakeBuilder{}
	seq := New(store, builder)

	target := seq.Logout(context.Background(), Request{
		SessionID: "sid-1",
		Reason:    ReasonNormal,
		Force:     true,
	})

	assert.Equal(t, "https://sso.uc.cl/cas/logout?service="+DefaultRedirectPath, target)
}

func TestLogoutBuilderFailureFallsBackToLocalTarget(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	seq := New(store, &fakeBuilder{fail: true})

	target := seq.Logout(context.Background(), Request{
		SessionID:    "sid-1",
		Reason:       ReasonCAS,
		RedirectHint: "/login",
		Host:         "portal.uc.cl",
	})

	// Local logout still completed.
	assert.Equal(t, "/login", target)
	sess, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogoutWithoutBuilderUsesLocalTarget(t *testing.T) {
	store := newStoreWithSession(t, "sid-1")
	seq := New(store, nil)

	target := seq.Logout(context.Background(), Request{
		SessionID: "sid-1",
		Reason:    ReasonCAS,
	})

	assert.Equal(t, DefaultRedirectPath, target)
}

func TestLogoutStoreFailureRoutesToErrorPage(t *testing.T) {
	seq := New(failingStore{}, &fakeBuilder{})

	target := seq.Logout(context.Background(), Request{
		SessionID:    "sid-1",
		Reason:       ReasonNormal,
		RedirectHint: "/client/dashboard",
		Host:         "portal.uc.cl",
	})

	assert.Equal(t, ErrorRedirectPath, target)
}

func TestLogoutWithoutSessionStillRedirects(t *testing.T) {
	seq := New(session.NewMemoryStore(), nil)

	target := seq.Logout(context.Background(), Request{})
	assert.Equal(t, DefaultRedirectPath, target)
}
