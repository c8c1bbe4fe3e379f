package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated actor id.
const UserIDKey = "user_id"

type claims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware accepts HS256 bearer tokens signed with secret and stores the
// actor id, taken from the uid claim or else sub, under UserIDKey.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
			abort(c, "missing bearer token")
			return
		}

		var cl claims
		token, err := jwt.ParseWithClaims(
			strings.TrimSpace(header[7:]),
			&cl,
			func(*jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			abort(c, "invalid token")
			return
		}

		uid := cl.UID
		if uid == "" {
			uid = cl.Subject
		}
		if uid == "" {
			abort(c, "token has no subject")
			return
		}

		c.Set(UserIDKey, uid)
		c.Next()
	}
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
