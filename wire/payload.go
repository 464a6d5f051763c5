// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Payload is the extra payload carried by a special transaction. It is
// either a variant registered for the transaction's type or OpaquePayload.
type Payload interface {
	// Serialize writes the payload bytes, without the length prefix.
	Serialize(w io.Writer) error
}

// OpaquePayload holds the raw extra payload of a special transaction whose
// type has no registered variant.
type OpaquePayload []byte

// Serialize writes the raw payload bytes.
func (p OpaquePayload) Serialize(w io.Writer) error {
	_, err := w.Write(p)
	return errors.WithStack(err)
}

// PayloadHandler describes one registered payload variant.
type PayloadHandler struct {
	// Name is used in log and error messages.
	Name string

	// Decode reads the variant's fields from the transaction's cursor. It
	// must consume exactly the bytes of its own fields.
	Decode func(r *Cursor) (Payload, error)

	// Matches reports whether p is a value of this variant.
	Matches func(p Payload) bool
}

// PayloadRegistry maps special transaction types to payload variants.
//
// Registration is expected to happen during program initialization. Once
// populated, a registry is only read, and concurrent lookups are safe.
type PayloadRegistry struct {
	mtx      sync.RWMutex
	handlers map[uint16]*PayloadHandler
}

// NewPayloadRegistry returns an empty registry.
func NewPayloadRegistry() *PayloadRegistry {
	return &PayloadRegistry{handlers: make(map[uint16]*PayloadHandler)}
}

// Register adds handler for txType. Type 0 denotes a legacy transaction and
// cannot be registered, and each type can be registered only once.
func (r *PayloadRegistry) Register(txType uint16, handler *PayloadHandler) error {
	if txType == 0 {
		return errors.New("special transaction type 0 is reserved for legacy transactions")
	}
	if handler == nil || handler.Decode == nil || handler.Matches == nil {
		return errors.Errorf("incomplete payload handler for special transaction type %d", txType)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	if existing, ok := r.handlers[txType]; ok {
		return errors.Errorf("special transaction type %d is already registered to %s",
			txType, existing.Name)
	}
	r.handlers[txType] = handler
	return nil
}

// Lookup returns the handler registered for txType.
func (r *PayloadRegistry) Lookup(txType uint16) (*PayloadHandler, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	handler, ok := r.handlers[txType]
	return handler, ok
}

// Types returns the registered types in ascending order.
func (r *PayloadRegistry) Types() []uint16 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	types := make([]uint16, 0, len(r.handlers))
	for txType := range r.handlers {
		types = append(types, txType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DefaultPayloadRegistry holds the payload variants known to this package.
// It is used by DecodeTransaction, EncodeTransaction and any TxCodec without
// its own registry.
var DefaultPayloadRegistry = newDefaultPayloadRegistry()

func newDefaultPayloadRegistry() *PayloadRegistry {
	registry := NewPayloadRegistry()
	err := registry.Register(TxTypeGovernanceVote, governanceVoteHandler)
	if err != nil {
		panic(err)
	}
	return registry
}

// RegisterPayloadType registers a payload variant in DefaultPayloadRegistry.
// It must only be called during program initialization.
func RegisterPayloadType(txType uint16, handler *PayloadHandler) error {
	return DefaultPayloadRegistry.Register(txType, handler)
}
