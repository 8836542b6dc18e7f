package auth

import (
	"fmt"
	"net/url"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken validates a bearer JWT against the identity provider's
// JWKS endpoint and returns its claims. baseURL is the provider base URL
// (AUTH_BASE_URL); the issuer must match its origin.
func ValidateToken(baseURL, tokenString string) (jwt.MapClaims, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("AUTH_BASE_URL is not set")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid auth base URL: %w", err)
	}
	issuer := u.Scheme + "://" + u.Host

	jwks, err := keyfunc.NewDefault([]string{baseURL + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("fetching JWKS: %w", err)
	}

	token, err := jwt.Parse(tokenString, jwks.Keyfunc,
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{"RS256", "EdDSA"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// UserIDFromClaims extracts the user id from the "sub" claim.
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
