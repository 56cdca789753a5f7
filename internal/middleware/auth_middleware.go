package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	autherrors "metaedge-portal/internal/auth/errors"
	"metaedge-portal/internal/principal"
	"metaedge-portal/internal/shared/response"
)

const principalKey = "principal"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		accessLevel, _ := claims["access_level"].(string)
		if !principal.ValidAccessLevel(accessLevel) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Access level not found in token", nil)
			c.Abort()
			return
		}

		var accessTeams []string
		if raw, ok := claims["access_teams"].([]interface{}); ok {
			for _, v := range raw {
				if id, ok := v.(string); ok && id != "" {
					accessTeams = append(accessTeams, id)
				}
			}
		}

		c.Set(principalKey, principal.Principal{
			ID:          employeeID,
			AccessLevel: accessLevel,
			AccessTeams: accessTeams,
		})
		c.Set("employee_id", employeeID)

		c.Next()
	}
}

// GetPrincipal mengambil principal hasil AuthMiddleware.
func GetPrincipal(c *gin.Context) (principal.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return principal.Principal{}, false
	}
	p, ok := v.(principal.Principal)
	return p, ok
}
