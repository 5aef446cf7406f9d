package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"droscher.com/OnTap/configs"
)

var ErrInvalidToken = errors.New("invalid token")

type AuthManager struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, logger *zap.Logger) *AuthManager {
	return &AuthManager{secret: []byte(conf.Auth.SecretKey), logger: logger}
}

// Middleware guards the admin routes with an HS256 bearer token. When no
// secret is configured the check is skipped, which keeps local development
// and the sync CLI path friction-free.
func (a *AuthManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(a.secret) == 0 {
			c.Next()

			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})

			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}

			return a.secret, nil
		})

		if err != nil || !token.Valid {
			a.logger.Warn("rejected admin request", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		c.Next()
	}
}

// IssueToken mints a token for out-of-band distribution to admin tooling.
func (a *AuthManager) IssueToken(subject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})

	return token.SignedString(a.secret)
}
