// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the Crown transaction wire encoding.

A transaction is either legacy or special. Legacy transactions start with a
signed 32-bit version and end with the lock time:

	version:int32 | varint(n) | txin[n] | varint(m) | txout[m] | locktime:uint32

Special transactions pack a 16-bit version and a 16-bit type into the same
four bytes and append a length prefixed extra payload after the lock time:

	version:uint16 | type:uint16 | ... | locktime:uint32 | varint(len) | payload[len]

The type tag selects a payload variant through a PayloadRegistry. Registered
variants, such as the governance vote, are decoded into typed values; payloads
of unregistered types are kept as OpaquePayload bytes so that re-encoding is
byte-identical.

Header disambiguation

The four header bytes are read as one little-endian uint32. The upper 16 bits
are the type and the lower 16 bits the version. Special transactions were
introduced with version 3, so a non-zero type with a version below 3 is a
legacy transaction whose 32-bit version happens to have its upper bits set.
Such headers decode as legacy with the full 32-bit value as version. This is a
property of the wire format and must not be changed.
*/
package wire
