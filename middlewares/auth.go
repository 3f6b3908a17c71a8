package middlewares

import (
	"tapr/pkg/resp"
	"tapr/services"
	"tapr/utils"

	"github.com/gin-gonic/gin"
)

// Session resolves the cookie to a user and stores it on the context. A
// missing or bad cookie leaves the request anonymous; it never aborts.
func Session(auth *services.AuthService, cookie utils.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := cookie.Read(c.Request); ok {
			if user := auth.CurrentUser(c.Request.Context(), token); user != nil {
				utils.SetCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests and, when roles are given, users
// holding none of them.
func RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.CurrentUser(c)
		if user == nil {
			resp.Unauthorized(c, "Unauthorized")
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if user.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "Forbidden")
				return
			}
		}

		c.Next()
	}
}
