// Package keyparse imports stored JWK material into raw crypto keys for the
// verification paths. It owns no storage and makes no validation decisions.
package keyparse

import (
	"crypto/ed25519"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// ParseJWK parses a JSON-encoded JWK and exports it to its raw key form:
// ed25519.PublicKey/PrivateKey, *rsa.PublicKey, *ecdsa.PublicKey, or []byte
// for symmetric (oct) keys.
func ParseJWK(raw string) (any, error) {
	key, err := jwk.ParseKey([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse jwk: %w", err)
	}

	var exported any
	if err := jwk.Export(key, &exported); err != nil {
		return nil, fmt.Errorf("export jwk: %w", err)
	}

	return exported, nil
}

// Ed25519Public extracts the raw Ed25519 public key from an exported key.
// Private keys yield their public half.
func Ed25519Public(key any) (ed25519.PublicKey, error) {
	switch k := key.(type) {
	case ed25519.PublicKey:
		return k, nil
	case ed25519.PrivateKey:
		return k.Public().(ed25519.PublicKey), nil
	default:
		return nil, fmt.Errorf("not an ed25519 key: %T", key)
	}
}
