package tokenguard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/altari-labs/tokenguard/internal/keyparse"
	"github.com/altari-labs/tokenguard/keystore"
)

var (
	symmetricMethods  = []string{"HS256", "HS384", "HS512"}
	asymmetricMethods = []string{
		"RS256", "RS384", "RS512",
		"PS256", "PS384", "PS512",
		"ES256", "ES384", "ES512",
	}
)

// rawParser decodes segments without verifying; it never validates claims.
var rawParser = jwt.NewParser()

// Validator checks token signatures and expiry. Construct through
// [Builder.Build]; a zero Validator is not usable.
type Validator struct {
	config Config
	keys   keystore.Store
	sink   AuditSink
}

// Validate checks the signature and expiry of a compact serialized token.
// HMAC-family tokens are verified against secret; all other families resolve
// a public key from the key store by the kid header.
//
// Validate never returns an error or panics: every outcome, including
// malformed input and backend failure, terminates in a [ValidationResult].
// Calls are independent and safe to run concurrently.
func (v *Validator) Validate(ctx context.Context, token string, secret string) ValidationResult {
	decoded, err := decodeUnverified(token)
	if err != nil {
		res := boundaryResult(err)
		v.emitValidate(ctx, "", "", res)
		return res
	}

	alg, _ := decoded.Header["alg"].(string)
	kid, _ := decoded.Header["kid"].(string)
	expired := expiredAt(decoded.Payload, time.Now())

	var res ValidationResult
	switch family := ClassifyAlgorithm(alg); family {
	case FamilySymmetric:
		res = v.verifySymmetric(token, secret, decoded, expired)
	case FamilyAsymmetricEdDSA, FamilyAsymmetricGeneric:
		inner, err := v.verifyAsymmetric(ctx, family, token, alg, kid, decoded, expired)
		if err != nil {
			inner = boundaryResult(err)
		}
		res = inner
	case FamilyUnsupported:
		res = boundaryResult(fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg))
	}

	v.emitValidate(ctx, kid, alg, res)
	return res
}

// verifySymmetric is the HMAC path. An expiry failure from the library is a
// soft success: the signature was cryptographically valid and expiry is
// reported only through the Expired field.
func (v *Validator) verifySymmetric(token, secret string, decoded DecodedToken, expired bool) ValidationResult {
	parser := jwt.NewParser(v.parserOptions(symmetricMethods)...)
	_, err := parser.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})

	switch {
	case err == nil:
		return ValidationResult{Verified: true, Decoded: decoded, Expired: expired}
	case errors.Is(err, jwt.ErrTokenExpired):
		return ValidationResult{Verified: true, Decoded: decoded, Expired: expired}
	default:
		return ValidationResult{Decoded: decoded, Expired: expired, Error: err.Error()}
	}
}

// verifyAsymmetric resolves a stored JWK by kid and verifies with it.
// A returned error propagates to the outer boundary; an unresolved key is a
// negative result without a message.
func (v *Validator) verifyAsymmetric(
	ctx context.Context,
	family AlgorithmFamily,
	token, alg, kid string,
	decoded DecodedToken,
	expired bool,
) (ValidationResult, error) {
	if kid == "" {
		v.emitKeyMiss(ctx, kid, alg)
		return ValidationResult{Decoded: decoded, Expired: expired}, nil
	}

	rec, err := v.keys.GetKeyByID(ctx, kid)
	if err != nil {
		return ValidationResult{}, err
	}
	if rec == nil {
		v.emitKeyMiss(ctx, kid, alg)
		return ValidationResult{Decoded: decoded, Expired: expired}, nil
	}

	key, err := keyparse.ParseJWK(rec.Key)
	if err != nil {
		return ValidationResult{}, err
	}

	if family == FamilyAsymmetricEdDSA {
		pub, err := keyparse.Ed25519Public(key)
		if err != nil {
			return ValidationResult{}, err
		}
		if err := verifyEdDSARaw(token, pub); err != nil {
			return ValidationResult{}, err
		}
		return ValidationResult{Verified: true, Decoded: decoded, Expired: expired}, nil
	}

	parser := jwt.NewParser(v.parserOptions(asymmetricMethods)...)
	_, err = parser.Parse(token, func(*jwt.Token) (any, error) {
		return key, nil
	})

	switch {
	case err == nil:
		return ValidationResult{Verified: true, Decoded: decoded, Expired: expired}, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		// Unlike the symmetric path, expiry here is a hard failure that
		// propagates to the outer boundary.
		return ValidationResult{}, err
	default:
		// Negative result without a message, distinct from the symmetric path.
		return ValidationResult{Decoded: decoded, Expired: expired}, nil
	}
}

func (v *Validator) parserOptions(methods []string) []jwt.ParserOption {
	options := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
	}
	if v.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(v.config.Leeway))
	}
	return options
}

func (v *Validator) emitValidate(ctx context.Context, kid, alg string, res ValidationResult) {
	v.sink.Emit(ctx, Event{
		Timestamp: time.Now(),
		EventType: EventValidate,
		KID:       kid,
		Algorithm: alg,
		Verified:  res.Verified,
		Expired:   res.Expired,
		Error:     res.Error,
	})
}

func (v *Validator) emitKeyMiss(ctx context.Context, kid, alg string) {
	v.sink.Emit(ctx, Event{
		Timestamp: time.Now(),
		EventType: EventKeyMiss,
		KID:       kid,
		Algorithm: alg,
	})
}

// boundaryResult is the outer error boundary: nothing escapes Validate as an
// error, and a failure that propagates this far loses the decoded content.
func boundaryResult(err error) ValidationResult {
	return ValidationResult{Decoded: emptyDecoded(), Error: err.Error()}
}

// decodeUnverified decodes the header and payload segments without checking
// the signature. This is the only internal path that yields empty Decoded.
func decodeUnverified(token string) (DecodedToken, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return DecodedToken{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrTokenMalformed, len(parts))
	}

	headerBytes, err := rawParser.DecodeSegment(parts[0])
	if err != nil {
		return DecodedToken{}, fmt.Errorf("%w: header segment: %v", ErrTokenMalformed, err)
	}
	payloadBytes, err := rawParser.DecodeSegment(parts[1])
	if err != nil {
		return DecodedToken{}, fmt.Errorf("%w: payload segment: %v", ErrTokenMalformed, err)
	}

	decoded := emptyDecoded()
	if err := json.Unmarshal(headerBytes, &decoded.Header); err != nil {
		return DecodedToken{}, fmt.Errorf("%w: header: %v", ErrTokenMalformed, err)
	}
	if err := json.Unmarshal(payloadBytes, &decoded.Payload); err != nil {
		return DecodedToken{}, fmt.Errorf("%w: payload: %v", ErrTokenMalformed, err)
	}

	return decoded, nil
}

// expiredAt reports whether the exp claim (numeric seconds since epoch) is in
// the past. An absent or non-numeric exp means not expired.
func expiredAt(payload map[string]any, now time.Time) bool {
	raw, ok := payload["exp"]
	if !ok {
		return false
	}

	var exp float64
	switch v := raw.(type) {
	case float64:
		exp = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false
		}
		exp = f
	default:
		return false
	}

	return exp < float64(now.UnixNano())/float64(time.Second)
}
