package middleware

import (
	"net/http"
	"strings"

	"lifeline/internal/models"
	"lifeline/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CallerContextKey = "caller"

// JWTClaims are the token claims issued by the account service. This service
// only consumes them.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthRequired validates the bearer token and puts the resolved Caller on the
// request context. Role checks happen inside the services, not here, so every
// operation re-verifies its own capability.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token claims")
			c.Abort()
			return
		}

		callerID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(CallerContextKey, models.Caller{
			ID:   callerID,
			Role: models.UserRole(claims.Role),
		})

		c.Next()
	}
}

// CallerFromContext retrieves the authenticated caller set by AuthRequired.
func CallerFromContext(c *gin.Context) (models.Caller, bool) {
	value, exists := c.Get(CallerContextKey)
	if !exists {
		return models.Caller{}, false
	}

	caller, ok := value.(models.Caller)
	return caller, ok
}

// RoleRequired rejects callers whose token carries a different role. The
// services perform the same check; this just fails fast at the edge.
func RoleRequired(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if caller.Role != role {
			utils.ErrorResponse(c, http.StatusForbidden, "AUTHORIZATION_ERROR", "Access denied for your role")
			c.Abort()
			return
		}

		c.Next()
	}
}
