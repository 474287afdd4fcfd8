package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth/handler"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth/logoutseq"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/auth/provisioner"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/cas"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/config"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/logger"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/middleware"
	"github.com/karlwennerstrom/sistemaDeProyectos-sub002/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)

	// The validator is selected once, here. The live path never sees
	// mock logic; the mock is only constructible behind the flag.
	var validator cas.Validator
	if cfg.CASMockEnabled {
		validator = cas.NewMockValidator()
	} else {
		validator, err = cas.NewLiveValidator(cfg.CASBaseURL, nil, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	logger.Info("ticket validator selected", map[string]any{
		"validator": validator.Name(),
	})

	logoutURLs, err := cas.NewURLBuilder(cfg.CASBaseURL, cfg.CASServiceURL)
	if err != nil {
		return nil, nil, err
	}

	prov := provisioner.New(infra.DB, sessionStore, cfg.SessionTTL)
	sequencer := logoutseq.New(sessionStore, logoutURLs)

	cookieOpts := session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	authHandler := handler.NewHandler(
		validator,
		prov,
		sequencer,
		cfg.CASServiceURL,
		cookieOpts,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		sess, ok := middleware.SessionFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatus(401)
			return
		}
		c.JSON(200, gin.H{
			"user_id":    sess.UserID,
			"user_email": sess.UserEmail,
			"user_name":  sess.UserName,
			"user_type":  sess.UserType,
			"user_role":  sess.UserRole,
			"user_areas": sess.UserAreas,
		})
	})

	// ----------------------------
	// Protected Admin Routes
	// ----------------------------

	admin := router.Group("/api/admin")
	admin.Use(middleware.GinRequireAdmin(authMiddleware))

	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		prov.Wait()
		return infra.DB.Close()
	}, nil
}
