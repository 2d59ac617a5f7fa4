package tokenguard

import "strings"

// AlgorithmFamily classifies a declared signing algorithm into one of four
// closed variants. Dispatch over the family is total: there is no fallthrough
// for an unrecognized algorithm name.
type AlgorithmFamily uint8

const (
	// FamilyUnsupported covers empty, "none", and unknown algorithm names.
	FamilyUnsupported AlgorithmFamily = iota
	// FamilySymmetric covers the HMAC family (HS256/HS384/HS512), keyed by
	// the caller-supplied shared secret.
	FamilySymmetric
	// FamilyAsymmetricGeneric covers RSA and ECDSA families verified through
	// the standard JWT routine with a stored public key.
	FamilyAsymmetricGeneric
	// FamilyAsymmetricEdDSA is the special-cased raw Ed25519 path.
	FamilyAsymmetricEdDSA
)

func (f AlgorithmFamily) String() string {
	switch f {
	case FamilySymmetric:
		return "symmetric"
	case FamilyAsymmetricGeneric:
		return "asymmetric"
	case FamilyAsymmetricEdDSA:
		return "eddsa"
	default:
		return "unsupported"
	}
}

// ClassifyAlgorithm maps a header alg value, compared case-insensitively,
// to its [AlgorithmFamily].
func ClassifyAlgorithm(alg string) AlgorithmFamily {
	upper := strings.ToUpper(strings.TrimSpace(alg))
	switch {
	case upper == "":
		return FamilyUnsupported
	case strings.HasPrefix(upper, "HS"):
		return FamilySymmetric
	case upper == "EDDSA":
		return FamilyAsymmetricEdDSA
	case strings.HasPrefix(upper, "RS"),
		strings.HasPrefix(upper, "PS"),
		strings.HasPrefix(upper, "ES"):
		return FamilyAsymmetricGeneric
	default:
		return FamilyUnsupported
	}
}

// DecodedToken holds the header and payload of a token decoded without
// signature verification. Both maps are non-nil; they are empty only when
// decoding itself failed.
type DecodedToken struct {
	Header  map[string]any `json:"header"`
	Payload map[string]any `json:"payload"`
}

func emptyDecoded() DecodedToken {
	return DecodedToken{Header: map[string]any{}, Payload: map[string]any{}}
}

// ValidationResult is returned by [Validator.Validate].
//
// Verified=false with an empty Error is a legitimate negative result (an
// unresolved key), not a system fault. Expired is computed from the exp claim
// independently of signature verification.
type ValidationResult struct {
	Verified bool         `json:"verified"`
	Decoded  DecodedToken `json:"decoded"`
	Expired  bool         `json:"expired"`
	Error    string       `json:"error,omitempty"`
}
