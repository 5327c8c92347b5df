package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
)

const (
	ContextNutritionistID = "nutritionistID"
	ContextUserRole       = "userRole"
)

// AuthMiddleware verifies bearer tokens issued by the auth service. The
// subject claim carries the nutritionist id.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
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
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}
		nutritionistID, err := uuid.Parse(sub)
		if err != nil {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextNutritionistID, nutritionistID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: http.StatusText(http.StatusUnauthorized),
	})
}

// NutritionistID reads the id set by AuthMiddleware.
func NutritionistID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextNutritionistID).(uuid.UUID)
}
