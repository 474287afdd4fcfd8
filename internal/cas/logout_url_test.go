package cas

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutURLWrapsRelativeTarget(t *testing.T) {
	b, err := NewURLBuilder("https://sso.uc.cl/cas", "https://portal.uc.cl")
	require.NoError(t, err)

	out, err := b.LogoutURL("/login?message=logout_success")
	require.NoError(t, err)

	u, err := url.Parse(out)
	require.NoError(t, err)

	assert.Equal(t, "sso.uc.cl", u.Host)
	assert.Equal(t, "/cas/logout", u.Path)
	assert.Equal(t, "https://portal.uc.cl/login?message=logout_success",
		u.Query().Get("service"))
}

func TestLogoutURLKeepsAbsoluteTarget(t *testing.T) {
	b, err := NewURLBuilder("https://sso.uc.cl/cas", "https://portal.uc.cl")
	require.NoError(t, err)

	out, err := b.LogoutURL("https://portal.uc.cl/client/dashboard")
	require.NoError(t, err)

	u, _ := url.Parse(out)
	assert.Equal(t, "https://portal.uc.cl/client/dashboard", u.Query().Get("service"))
}

func TestLogoutURLEmptyTargetFallsBackToPortal(t *testing.T) {
	b, err := NewURLBuilder("https://sso.uc.cl/cas", "https://portal.uc.cl")
	require.NoError(t, err)

	out, err := b.LogoutURL("")
	require.NoError(t, err)

	u, _ := url.Parse(out)
	assert.Equal(t, "https://portal.uc.cl", u.Query().Get("service"))
}

func TestLogoutURLRejectsSchemelessTarget(t *testing.T) {
	b, err := NewURLBuilder("https://sso.uc.cl/cas", "https://portal.uc.cl")
	require.NoError(t, err)

	_, err = b.LogoutURL("evil.example/phish")
	assert.Error(t, err)
}

func TestNewURLBuilderValidation(t *testing.T) {
	_, err := NewURLBuilder("", "https://portal.uc.cl")
	assert.Error(t, err)

	_, err = NewURLBuilder("https://sso.uc.cl/cas", "portal.uc.cl")
	assert.Error(t, err)
}
