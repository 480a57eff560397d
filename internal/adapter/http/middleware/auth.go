package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.uber.org/zap"
)

// Claims is the token shape issued by the identity provider. Email is
// always present on valid tokens; UserID only on newer ones.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity resolves the bearer credential into a caller identity. An
// absent or malformed credential degrades to the anonymous identity rather
// than failing the request; endpoints that need a resolved caller reject
// anonymous callers themselves.
func Identity(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := resolve(r, jwtSecret, logger)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), caller)))
		})
	}
}

func resolve(r *http.Request, jwtSecret string, logger *zap.Logger) domain.Identity {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.Identity{}
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		logger.Debug("malformed authorization header, treating caller as anonymous")
		return domain.Identity{}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.Email == "" {
		logger.Debug("invalid bearer token, treating caller as anonymous", zap.Error(err))
		return domain.Identity{}
	}

	return domain.Identity{ID: claims.UserID, Email: claims.Email}
}
