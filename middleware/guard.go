package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/altari-labs/tokenguard"
)

type resultContextKey struct{}

// ResultFromContext returns the validation result injected by [Require].
func ResultFromContext(ctx context.Context) (tokenguard.ValidationResult, bool) {
	res, ok := ctx.Value(resultContextKey{}).(tokenguard.ValidationResult)
	return res, ok
}

// Require rejects requests whose bearer token does not verify or is expired.
// secret is forwarded to Validate for HMAC-family tokens; asymmetric tokens
// resolve their key through the validator's key store.
func Require(validator *tokenguard.Validator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res := validator.Validate(r.Context(), token, secret)
			if !res.Verified || res.Expired {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), resultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
