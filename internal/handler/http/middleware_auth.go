package http

import (
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/AmirOssanloo/pkg-sits-node-service/configuration"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
)

type authRule struct {
	pattern  string
	strategy string
	verifier Verifier
}

// authMatcher decides which requests need a token and which strategy checks
// it.
type authMatcher struct {
	ignore []string
	rules  []authRule
}

func newAuthMatcher(cfg *configuration.AuthConfig, extra map[string]ProviderFactory) (*authMatcher, error) {
	m := &authMatcher{ignore: cfg.EffectiveIgnorePaths()}
	if cfg == nil {
		return m, nil
	}

	providers := map[string]ProviderFactory{ProviderJWT: NewJWTVerifier}
	maps.Copy(providers, extra)

	verifiers := make(map[string]Verifier, len(cfg.Strategies))
	for name, strategy := range cfg.Strategies {
		factory, ok := providers[strings.ToLower(strategy.Provider)]
		if !ok {
			return nil, fmt.Errorf("%w: %q used by strategy %q", ErrUnsupportedAuthProvider, strategy.Provider, name)
		}
		v, err := factory(name, strategy.Config)
		if err != nil {
			return nil, err
		}
		verifiers[name] = v
	}

	for _, p := range cfg.Paths {
		v, ok := verifiers[p.Strategy]
		if !ok {
			return nil, fmt.Errorf("path %q references unknown strategy %q", p.Path, p.Strategy)
		}
		m.rules = append(m.rules, authRule{pattern: p.Path, strategy: p.Strategy, verifier: v})
	}

	return m, nil
}

func (m *authMatcher) enabled() bool {
	return len(m.rules) > 0
}

// match returns the first rule protecting path. Ignored paths never match.
func (m *authMatcher) match(path string) (authRule, bool) {
	for _, pattern := range m.ignore {
		if matchPath(pattern, path) {
			return authRule{}, false
		}
	}
	for _, rule := range m.rules {
		if matchPath(rule.pattern, path) {
			return rule, true
		}
	}
	return authRule{}, false
}

// IsSecurePath reports whether a request to path must be authenticated.
func (h *Handler) IsSecurePath(path string) bool {
	_, ok := h.auth.match(path)
	return ok
}

// matchPath treats a trailing "*" as a prefix wildcard and anything else as
// a literal prefix matched on segment boundaries.
func matchPath(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		if strings.HasPrefix(path, prefix) {
			return true
		}
		// "/api/*" also covers "/api".
		return strings.HasSuffix(prefix, "/") && path == strings.TrimSuffix(prefix, "/")
	}

	base := strings.TrimSuffix(pattern, "/")
	return path == pattern || path == base || strings.HasPrefix(path, base+"/")
}

// withAuth enforces bearer authentication on secured paths and stores the
// verified identity on the request context.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, secured := h.auth.match(r.URL.Path)
		if !secured {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			ForwardError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			ForwardError(w, r, err)
			return
		}

		identity, err := rule.verifier.Verify(r.Context(), token)
		if err != nil {
			log.Err(err).Str("strategy", rule.strategy).Msg("token verification failed")
			ForwardError(w, r, fmt.Errorf("%w: %w", ErrTokenRejected, err))
			return
		}

		r, rc := ensureRequestContext(r)
		rc.setIdentity(identity)

		next.ServeHTTP(w, r)
	})
}
