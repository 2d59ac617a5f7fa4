package tokenguard

import (
	"errors"

	"github.com/altari-labs/tokenguard/keystore"
)

// Builder assembles a [Validator]. Construction is allocation-only; the
// single explicit initialization point is [Builder.Build].
type Builder struct {
	config Config
	keys   keystore.Store
	sink   AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the validator configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithKeyStore sets the key store used to resolve asymmetric verification
// keys by kid. Required; symmetric-only deployments can pass
// [keystore.NewMemoryStore].
func (b *Builder) WithKeyStore(store keystore.Store) *Builder {
	b.keys = store
	return b
}

// WithAuditSink sets the audit sink. Nil defaults to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.sink = sink
	return b
}

// Build validates the configuration and returns an immutable [Validator].
// A Builder can be used once.
func (b *Builder) Build() (*Validator, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.keys == nil {
		return nil, ErrKeyStoreRequired
	}

	sink := b.sink
	if sink == nil {
		sink = NoOpSink{}
	}

	b.built = true
	return &Validator{
		config: b.config,
		keys:   b.keys,
		sink:   sink,
	}, nil
}
