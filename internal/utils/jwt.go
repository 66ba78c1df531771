package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT Token")
	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token (optional)
//   - Subject   (sub): the principal the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Extra claims are copied verbatim and never override the standard ones.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("orders", "user-42", time.Hour, "secret", nil)
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string, extra map[string]any) (models.Token, error) {
	if subject == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(tokenDuration))
	if issuer != "" {
		claims["iss"] = issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString}, nil
}

// VerifyOptions controls [VerifyJWTToken].
type VerifyOptions struct {
	Secret string
	// Issuer, when set, must match the iss claim.
	Issuer string
	// Audience, when set, must be listed in the aud claim.
	Audience string
	// Algorithms restricts accepted signing methods; HS256 when empty.
	Algorithms []string
	// RequireExpiration rejects tokens without an exp claim. An exp claim
	// that is present is always checked.
	RequireExpiration bool
}

// VerifyJWTToken checks the signature and the time based claims of
// tokenString and returns its claims.
func VerifyJWTToken(tokenString string, opts VerifyOptions) (jwt.MapClaims, error) {
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = []string{jwt.SigningMethodHS256.Alg()}
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods(algorithms)}
	if opts.RequireExpiration {
		parserOpts = append(parserOpts, jwt.WithExpirationRequired())
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(opts.Secret), nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	if len(parts) == 1 {
		return "", ErrEmptyToken
	}
	if len(parts) > 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	return parts[1], nil
}
