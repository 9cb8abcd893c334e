package middleware

import (
	"net/http"
	"strings"

	"event-booking/pkg/utils"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// identityClaims are the provider's token claims. The subject is the opaque
// user id; it is never parsed or validated beyond non-emptiness.
type identityClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewJWKS fetches the identity provider's signing key set.
func NewJWKS(config utils.AuthConfig) (*keyfunc.JWKS, error) {
	return keyfunc.Get(config.JWKSUrl, keyfunc.Options{})
}

// Auth validates bearer tokens against the provider's JWKS and puts the
// subject plus profile claims on the request context. No sessions are issued
// or stored locally.
func Auth(jwks *keyfunc.JWKS, config utils.AuthConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims := &identityClaims{}
			parserOpts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256", "ES256"}),
			}
			if config.Audience != "" {
				parserOpts = append(parserOpts, jwt.WithAudience(config.Audience))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, jwks.Keyfunc, parserOpts...)
			if err != nil || !token.Valid {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			if claims.Subject == "" {
				utils.ResponseUnauthorized(w, "Token has no subject")
				return
			}

			ctx := utils.SetUserContext(r.Context(), utils.Profile{
				UserID:    claims.Subject,
				Username:  claims.Username,
				Name:      claims.Name,
				AvatarURL: claims.AvatarURL,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
