package cas

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// LogoutURLBuilder produces the CAS single-logout URL that ends the
// SSO-wide session and then returns the browser to a local target.
type LogoutURLBuilder interface {
	// LogoutURL wraps returnTo (an already-validated local redirect,
	// absolute or root-relative) into the CAS logout endpoint.
	LogoutURL(returnTo string) (string, error)
}

// URLBuilder builds logout URLs against a real CAS deployment.
type URLBuilder struct {
	casBase    *url.URL
	portalBase *url.URL
}

// NewURLBuilder needs the CAS root and the portal's public base URL;
// the latter absolutizes root-relative return targets, since CAS only
// accepts absolute service URLs.
func NewURLBuilder(casBaseURL, portalBaseURL string) (*URLBuilder, error) {
	casBase, err := url.Parse(casBaseURL)
	if err != nil || casBase.Scheme == "" || casBase.Host == "" {
		return nil, errors.New("cas: logout builder requires absolute cas base url")
	}

	portalBase, err := url.Parse(portalBaseURL)
	if err != nil || portalBase.Scheme == "" || portalBase.Host == "" {
		return nil, errors.New("cas: logout builder requires absolute portal base url")
	}

	return &URLBuilder{casBase: casBase, portalBase: portalBase}, nil
}

func (b *URLBuilder) LogoutURL(returnTo string) (string, error) {
	target, err := b.absolutize(returnTo)
	if err != nil {
		return "", err
	}

	u := *b.casBase
	u.Path = path.Join(u.Path, "logout")

	q := u.Query()
	q.Set("service", target)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (b *URLBuilder) absolutize(returnTo string) (string, error) {
	if returnTo == "" {
		return b.portalBase.String(), nil
	}

	if strings.HasPrefix(returnTo, "/") {
		ref, err := url.Parse(returnTo)
		if err != nil {
			return "", fmt.Errorf("cas: invalid return target: %w", err)
		}
		return b.portalBase.ResolveReference(ref).String(), nil
	}

	u, err := url.Parse(returnTo)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.New("cas: return target must be absolute or root-relative")
	}
	return u.String(), nil
}
