package http

//go:generate mockgen -source=auth_strategy.go -destination=../../mock/verifier_mock.go -package=mock

import (
	"context"
	"fmt"
	"slices"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
)

// ProviderJWT is the built-in bearer token provider.
const ProviderJWT = "jwt"

// Verifier authenticates a bearer token for one strategy.
type Verifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

// ProviderFactory builds a Verifier for the named strategy from its config
// block.
type ProviderFactory func(strategy string, config map[string]any) (Verifier, error)

type jwtVerifier struct {
	strategy string
	opts     utils.VerifyOptions
}

// hmacAlgorithms are the signing methods verifiable with the shared secret.
var hmacAlgorithms = []string{"HS256", "HS384", "HS512"}

// NewJWTVerifier understands the keys secret, issuer, audience, algorithms
// and requireExpiration.
func NewJWTVerifier(strategy string, config map[string]any) (Verifier, error) {
	secret, _ := config["secret"].(string)
	if secret == "" {
		return nil, fmt.Errorf("%w: strategy %q", ErrMissingSecret, strategy)
	}

	opts := utils.VerifyOptions{Secret: secret}
	opts.Issuer, _ = config["issuer"].(string)
	opts.Audience, _ = config["audience"].(string)
	opts.RequireExpiration, _ = config["requireExpiration"].(bool)

	switch algs := config["algorithms"].(type) {
	case []string:
		opts.Algorithms = algs
	case []any:
		for _, a := range algs {
			if s, ok := a.(string); ok {
				opts.Algorithms = append(opts.Algorithms, s)
			}
		}
	}

	for _, alg := range opts.Algorithms {
		if !slices.Contains(hmacAlgorithms, alg) {
			return nil, fmt.Errorf("%w: strategy %q lists %q", ErrUnsupportedAlgorithm, strategy, alg)
		}
	}

	return &jwtVerifier{strategy: strategy, opts: opts}, nil
}

func (v *jwtVerifier) Verify(_ context.Context, token string) (*models.Identity, error) {
	claims, err := utils.VerifyJWTToken(token, v.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, err)
	}

	subject, _ := claims.GetSubject()
	return &models.Identity{Strategy: v.strategy, Subject: subject, Claims: claims}, nil
}
