package cas

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
)

// AttributeMap maps CAS attribute names (as they appear inside
// <cas:attributes>) to assertion fields. Valid targets: display_name,
// given_name, surname, department, title. An empty map means only the
// bare username is trusted.
type AttributeMap map[string]string

// LiveValidator redeems tickets against a real CAS 2.0 server.
type LiveValidator struct {
	baseURL *url.URL
	client  *http.Client
	attrs   AttributeMap
}

// NewLiveValidator builds a validator for the CAS deployment rooted at
// baseURL (e.g. https://sso.uc.cl/cas). httpClient may be nil.
func NewLiveValidator(baseURL string, attrs AttributeMap, httpClient *http.Client) (*LiveValidator, error) {
	if baseURL == "" {
		return nil, errors.New("cas: base url is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("cas: invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("cas: base url must be absolute")
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &LiveValidator{
		baseURL: u,
		client:  httpClient,
		attrs:   attrs,
	}, nil
}

func (v *LiveValidator) Name() string {
	return "cas-live"
}

// serviceValidateURL builds {base}/serviceValidate?service=...&ticket=...
func (v *LiveValidator) serviceValidateURL(ticket, serviceURL string) string {
	u := *v.baseURL
	u.Path = path.Join(u.Path, "serviceValidate")

	q := u.Query()
	q.Set("service", serviceURL)
	q.Set("ticket", ticket)
	u.RawQuery = q.Encode()

	return u.String()
}

func (v *LiveValidator) Validate(ctx context.Context, ticket, serviceURL string) (*auth.Assertion, error) {

	if ticket == "" {
		return nil, fmt.Errorf("%w: empty ticket", ErrTicketRejected)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		v.serviceValidateURL(ticket, serviceURL),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		logger.Error("cas validation transport failure", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var sr serviceResponse
	if err := xml.Unmarshal(body, &sr); err != nil {
		logger.Warn("cas response not parseable", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: malformed response: %v", ErrTicketRejected, err)
	}

	if sr.Success == nil {
		code, msg := "", ""
		if sr.Failure != nil {
			code = sr.Failure.Code
			msg = strings.TrimSpace(sr.Failure.Message)
		}
		logger.Warn("cas ticket rejected", map[string]any{
			"code":    code,
			"message": msg,
		})
		return nil, fmt.Errorf("%w: %s", ErrTicketRejected, code)
	}

	user := strings.TrimSpace(sr.Success.User)
	if user == "" {
		return nil, fmt.Errorf("%w: success without user", ErrTicketRejected)
	}

	assertion := &auth.Assertion{Email: user}
	v.applyAttributes(assertion, sr.Success.Attributes)

	logger.Info("cas ticket validated", map[string]any{
		"user": user,
	})

	return assertion, nil
}

// applyAttributes copies mapped CAS attributes onto the assertion.
// Unmapped attributes are ignored; the assertion only ever trusts what
// the deployment explicitly opted into.
func (v *LiveValidator) applyAttributes(a *auth.Assertion, attrs *casAttributes) {
	if attrs == nil || len(v.attrs) == 0 {
		return
	}

	for _, attr := range attrs.Values {
		field, ok := v.attrs[attr.XMLName.Local]
		if !ok {
			continue
		}

		value := strings.TrimSpace(attr.Value)
		switch field {
		case "display_name":
			a.DisplayName = value
		case "given_name":
			a.GivenName = value
		case "surname":
			a.Surname = value
		case "department":
			a.Department = value
		case "title":
			a.Title = value
		}
	}
}
