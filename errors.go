package tokenguard

import "errors"

var (
	// ErrTokenMalformed is reported when the token is not a decodable
	// three-segment compact serialization.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrUnsupportedAlgorithm is reported when the header alg maps to no
	// known algorithm family.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	// ErrEdDSASignature is the fixed failure message of the raw EdDSA
	// verification path. The underlying mismatch is never surfaced.
	ErrEdDSASignature = errors.New("eddsa signature verification failed")
	// ErrKeyStoreRequired is returned by [Builder.Build] when no key store
	// was configured.
	ErrKeyStoreRequired = errors.New("key store required")
)
