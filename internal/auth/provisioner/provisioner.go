package provisioner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/db"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/session"
)

// Landing pages per principal type.
const (
	AdminDashboardPath  = "/admin/dashboard"
	ClientDashboardPath = "/client/dashboard"
)

// uniqueViolation is the postgres error code that arbitrates two
// concurrent first logins for the same email.
const uniqueViolation = "23505"

// Outcome is a fully established login: the stored session and where
// to send the browser.
type Outcome struct {
	Session      session.Session
	RedirectPath string
}

// Provisioner turns a verified identity assertion into a local
// principal and a server-side session. It is the ONLY component that
// writes session authorization claims.
type Provisioner struct {
	db         *db.DB
	sessions   session.Store
	sessionTTL time.Duration

	stamps sync.WaitGroup // in-flight async last_login updates
}

func New(database *db.DB, sessions session.Store, sessionTTL time.Duration) *Provisioner {
	return &Provisioner{
		db:         database,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Login resolves the assertion admin-first, lazily creating a client
// row on first login, and establishes the session. On any error the
// session store is untouched: the store write is the last step.
func (p *Provisioner) Login(ctx context.Context, assertion *auth.Assertion) (*Outcome, error) {

	if assertion == nil || assertion.Email == "" {
		return nil, errors.New("provisioner: assertion without email")
	}

	principal, err := p.resolvePrincipal(ctx, assertion)
	if err != nil {
		return nil, err
	}

	switch pr := principal.(type) {
	case auth.Admin:
		out, err := p.establish(ctx, session.Session{
			UserID:    pr.ID,
			UserEmail: pr.Email,
			UserName:  pr.Name,
			UserType:  auth.TypeAdmin,
			UserRole:  pr.Role,
			UserAreas: pr.Areas,
		}, AdminDashboardPath)
		if err != nil {
			return nil, err
		}

		// Best-effort; the login outcome never waits on this.
		p.stamps.Add(1)
		go func() {
			defer p.stamps.Done()
			p.stampAdminLastLogin(pr.ID)
		}()

		return out, nil

	case auth.Client:
		// Stamp last_login before the session exists so a failure
		// here cannot leave a half-established login.
		if err := p.stampClientLastLogin(ctx, pr.ID); err != nil {
			return nil, fmt.Errorf("provisioner: last_login update: %w", err)
		}

		return p.establish(ctx, session.Session{
			UserID:    pr.ID,
			UserEmail: pr.Email,
			UserName:  pr.Name,
			UserType:  auth.TypeClient,
			UserRole:  auth.RoleClient,
		}, ClientDashboardPath)

	default:
		return nil, fmt.Errorf("provisioner: unknown principal %T", principal)
	}
}

// resolvePrincipal is the single place an email becomes a local
// principal: active admin first, else active client, created lazily on
// first login.
func (p *Provisioner) resolvePrincipal(ctx context.Context, assertion *auth.Assertion) (auth.Principal, error) {

	admin, err := p.findActiveAdmin(ctx, assertion.Email)
	if err != nil {
		return nil, fmt.Errorf("provisioner: admin lookup: %w", err)
	}
	if admin != nil {
		return *admin, nil
	}

	client, err := p.findActiveClient(ctx, assertion.Email)
	if err != nil {
		return nil, fmt.Errorf("provisioner: client lookup: %w", err)
	}
	if client == nil {
		client, err = p.createClient(ctx, assertion)
		if err != nil {
			return nil, fmt.Errorf("provisioner: client create: %w", err)
		}
	}

	return *client, nil
}

// Wait blocks until in-flight async last_login stamps finish. Called
// during graceful shutdown.
func (p *Provisioner) Wait() {
	p.stamps.Wait()
}

func (p *Provisioner) findActiveAdmin(ctx context.Context, email string) (*auth.Admin, error) {

	var (
		id   uuid.UUID
		name string
		role string
		raw  string
	)

	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, role, areas
		FROM admins
		WHERE LOWER(email) = LOWER($1)
		  AND status = 'active'
	`, email).Scan(&id, &name, &role, &raw)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auth.Admin{
		ID:     id.String(),
		Email:  email,
		Name:   name,
		Role:   role,
		Areas:  auth.DecodeAreas(raw),
		Status: auth.StatusActive,
	}, nil
}

func (p *Provisioner) findActiveClient(ctx context.Context, email string) (*auth.Client, error) {

	var (
		id   uuid.UUID
		name string
	)

	err := p.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM users
		WHERE LOWER(email) = LOWER($1)
		  AND status = 'active'
	`, email).Scan(&id, &name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auth.Client{
		ID:     id.String(),
		Email:  email,
		Name:   name,
		Status: auth.StatusActive,
	}, nil
}

// createClient inserts the first-login row. The assertion upstream is
// trusted, so the row is born active and verified. If a concurrent
// first login for the same email wins the unique-index race, the loser
// adopts the winning row instead of failing the user.
func (p *Provisioner) createClient(ctx context.Context, assertion *auth.Assertion) (*auth.Client, error) {

	name := assertion.DisplayName
	if name == "" {
		name = assertion.Email
	}

	var id uuid.UUID
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, first_name, last_name, department, status, email_verified)
		VALUES ($1, $2, $3, $4, $5, 'active', true)
		RETURNING id
	`,
		assertion.Email,
		name,
		assertion.GivenName,
		assertion.Surname,
		assertion.Department,
	).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			logger.Warn("concurrent first login, adopting existing client row", map[string]any{
				"email": assertion.Email,
			})

			existing, lookupErr := p.findActiveClient(ctx, assertion.Email)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				// Same email exists but not active; treat as denied.
				return nil, fmt.Errorf("client row for %s exists but is not active", assertion.Email)
			}
			return existing, nil
		}
		return nil, err
	}

	logger.Info("client created on first login", map[string]any{
		"client_id": id.String(),
		"email":     assertion.Email,
	})

	return &auth.Client{
		ID:            id.String(),
		Email:         assertion.Email,
		Name:          name,
		FirstName:     assertion.GivenName,
		LastName:      assertion.Surname,
		Department:    assertion.Department,
		Status:        auth.StatusActive,
		EmailVerified: true,
	}, nil
}

func (p *Provisioner) stampClientLastLogin(ctx context.Context, clientID string) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE users SET last_login = NOW(), updated_at = NOW()
		WHERE id = $1
	`, clientID)
	return err
}

// stampAdminLastLogin runs detached from the request; a failure is
// logged and otherwise ignored.
func (p *Provisioner) stampAdminLastLogin(adminID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := p.db.ExecContext(ctx, `
		UPDATE admins SET last_login = NOW(), updated_at = NOW()
		WHERE id = $1
	`, adminID)
	if err != nil {
		logger.Error("admin last_login stamp failed", map[string]any{
			"admin_id": adminID,
			"error":    err.Error(),
		})
	}
}

// establish generates the session id, writes the full claim set and
// returns the outcome. The session is replaced wholesale, never merged.
func (p *Provisioner) establish(ctx context.Context, claims session.Session, redirectPath string) (*Outcome, error) {

	sessionID, err := session.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("provisioner: session id: %w", err)
	}

	now := time.Now()
	claims.SessionID = sessionID
	claims.CreatedAt = now
	claims.ExpiresAt = now.Add(p.sessionTTL)

	if err := p.sessions.Create(ctx, claims); err != nil {
		return nil, fmt.Errorf("provisioner: session store: %w", err)
	}

	logger.Info("session established", map[string]any{
		"user_id":   claims.UserID,
		"user_type": claims.UserType,
		"user_role": claims.UserRole,
	})

	return &Outcome{
		Session:      claims,
		RedirectPath: redirectPath,
	}, nil
}
