package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicware/doctor-portal/internal/config"
)

const (
	ContextDoctorID = "doctorID"
	ContextUserRole = "userRole"
	ContextToken    = "sessionToken"
)

// AuthMiddleware verifies the session token locally so bad requests die
// here, but authentication stays the backend's job: the raw token is
// kept on the context and forwarded on every outbound call.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header", "redirect": "/login"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header", "redirect": "/login"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token", "redirect": "/login"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims", "redirect": "/login"})
			return
		}

		doctorID, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload", "redirect": "/login"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextDoctorID, int(doctorID))
		c.Set(ContextUserRole, role)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}
