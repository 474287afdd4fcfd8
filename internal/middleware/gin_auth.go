package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http AuthMiddleware to Gin. Auth
// decisions stay session-based and validator-agnostic.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return adapt(auth.RequireAuth)
}

// GinRequireAdmin is the admin-only variant of GinRequireAuth.
func GinRequireAdmin(auth *AuthMiddleware) gin.HandlerFunc {
	return adapt(auth.RequireAdmin)
}

func adapt(wrap func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := wrap(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the middleware already wrote a response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
