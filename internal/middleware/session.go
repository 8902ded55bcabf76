package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/auth"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/response"
)

const operatorKey = "operator"

// RequireSession rejects requests without a valid session cookie.
func RequireSession(sessions *auth.SessionManager, cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = auth.DefaultCookieName
	}
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			response.Unauthorized(c, "unauthorized")
			return
		}
		claims, err := sessions.Verify(token)
		if err != nil {
			response.Unauthorized(c, "unauthorized")
			return
		}
		c.Set(operatorKey, claims.Operator)
		c.Next()
	}
}

// GetOperator returns the authenticated operator name.
func GetOperator(c *gin.Context) (string, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
