package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth/logoutseq"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth/provisioner"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/cas"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/session"
)

type Handler struct {
	validator   cas.Validator
	provisioner *provisioner.Provisioner
	sequencer   *logoutseq.Sequencer
	serviceURL  string
	cookieOpts  session.CookieOptions
}

func NewHandler(
	validator cas.Validator,
	prov *provisioner.Provisioner,
	sequencer *logoutseq.Sequencer,
	serviceURL string,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		validator:   validator,
		provisioner: prov,
		sequencer:   sequencer,
		serviceURL:  serviceURL,
		cookieOpts:  cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.POST("/logout", h.Logout)

	for _, route := range r.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}
}

// Login handles the CAS return leg: a ticket parameter triggers
// validation and session provisioning; without one the login page
// state is rendered, decoding display-only error/message params.
func (h *Handler) Login(c *gin.Context) {

	ticket := c.Query("ticket")
	if ticket == "" {
		h.renderLogin(c, http.StatusOK, c.Query("error"), c.Query("message"))
		return
	}

	assertion, err := h.validator.Validate(c.Request.Context(), ticket, h.serviceURL)
	if err != nil {
		code := CodeInvalidTicket
		if errors.Is(err, cas.ErrUnavailable) {
			code = CodeCASUnavailable
		}

		logger.Warn("ticket validation failed", map[string]any{
			"validator": h.validator.Name(),
			"code":      code,
			"error":     err.Error(),
		})

		h.renderLogin(c, http.StatusUnauthorized, code, "")
		return
	}

	outcome, err := h.provisioner.Login(c.Request.Context(), assertion)
	if err != nil {
		logger.Error("login provisioning failed", map[string]any{
			"email": assertion.Email,
			"error": err.Error(),
		})

		// No redirect on failure; the session is guaranteed untouched.
		h.renderLogin(c, http.StatusInternalServerError, CodeLoginProcessing, "")
		return
	}

	session.SetCookie(
		c.Writer,
		outcome.Session.SessionID,
		outcome.Session.ExpiresAt,
		h.cookieOpts,
	)

	log.Printf("[LOGIN_SUCCESS] user_id=%s type=%s ip=%s",
		outcome.Session.UserID,
		outcome.Session.UserType,
		c.ClientIP(),
	)

	c.Redirect(http.StatusFound, outcome.RedirectPath)
}

// Logout tears down the session and always redirects somewhere safe.
func (h *Handler) Logout(c *gin.Context) {

	sessionID := ""
	if cookie, err := c.Request.Cookie(session.CookieName); err == nil {
		sessionID = cookie.Value
	}

	target := h.sequencer.Logout(c.Request.Context(), logoutseq.Request{
		SessionID:    sessionID,
		Reason:       logoutseq.NormalizeReason(c.Query("type")),
		RedirectHint: c.Query("redirect"),
		Force:        c.Query("force") == "1",
		Host:         c.Request.Host,
	})

	// Cookie teardown happens regardless of how the sequencer fared.
	session.ClearCookie(c.Writer, h.cookieOpts)
	session.ClearAuxiliaryCookies(c.Writer, h.cookieOpts)

	c.Redirect(http.StatusFound, target)
}

// renderLogin emits the login page state. The portal frontend renders
// it; this service only supplies codes and their fixed messages.
func (h *Handler) renderLogin(c *gin.Context, status int, errorCode, messageCode string) {

	body := gin.H{"page": "login"}

	if msg, ok := errorMessages[errorCode]; ok {
		body["error"] = errorCode
		body["error_message"] = msg
	}
	if msg, ok := infoMessages[messageCode]; ok {
		body["message"] = messageCode
		body["message_text"] = msg
	}

	c.JSON(status, body)
}
