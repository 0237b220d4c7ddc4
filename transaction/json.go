// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// HexBytes - a byte slice in 0x prefixed hex
type HexBytes []byte

// MarshalText - convert to hex text
func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b)), nil
}

// UnmarshalText - convert hex text, prefix optional
func (b *HexBytes) UnmarshalText(s []byte) error {
	d, err := hex.DecodeString(strings.TrimPrefix(string(s), "0x"))
	if nil != err {
		return err
	}
	*b = d
	return nil
}

// JSON forms of the tagged unions
type payloadJSON struct {
	Transfer *Transfer `json:"Transfer,omitempty"`
}

type authenticatorJSON struct {
	Ed25519 *Authenticator `json:"Ed25519"`
}

type rawJSON struct {
	RawTransaction
	Payload payloadJSON `json:"payload"`
}

type signedJSON struct {
	Raw           rawJSON           `json:"raw_txn"`
	Authenticator authenticatorJSON `json:"authenticator"`
}

// MarshalJSON - payload and authenticator as externally tagged unions
func (t SignedTransaction) MarshalJSON() ([]byte, error) {
	out := signedJSON{
		Raw: rawJSON{RawTransaction: t.Raw},
		Authenticator: authenticatorJSON{
			Ed25519: &t.Authenticator,
		},
	}
	switch p := t.Raw.Payload.(type) {
	case Transfer:
		out.Raw.Payload.Transfer = &p
	case *Transfer:
		out.Raw.Payload.Transfer = p
	default:
		return nil, fmt.Errorf("payload: %T: %w", p, fault.ErrUnsupportedPayload)
	}
	return json.Marshal(out)
}

// UnmarshalJSON - reverse of MarshalJSON
func (t *SignedTransaction) UnmarshalJSON(b []byte) error {
	var in signedJSON
	if err := strictDecode(b, &in); nil != err {
		return err
	}
	if nil == in.Raw.Payload.Transfer {
		return fault.ErrUnsupportedPayload
	}
	if nil == in.Authenticator.Ed25519 {
		return fault.ErrInvalidSignature
	}

	t.Raw = in.Raw.RawTransaction
	t.Raw.Payload = *in.Raw.Payload.Transfer
	t.Authenticator = *in.Authenticator.Ed25519
	return nil
}

// Envelope - a transaction tagged with the family it belongs to
type Envelope struct {
	Move *SignedTransaction `json:"Move"`
}

// ReadEnvelope - decode an envelope, any malformed input is a bad
// request
func ReadEnvelope(r io.Reader) (*SignedTransaction, error) {
	body, err := io.ReadAll(r)
	if nil != err {
		return nil, fmt.Errorf("%s: %w", err, fault.ErrBadRequest)
	}
	var e Envelope
	if err := strictDecode(body, &e); nil != err {
		return nil, fmt.Errorf("%s: %w", err, fault.ErrBadRequest)
	}
	if nil == e.Move {
		return nil, fmt.Errorf("%s: %w", fault.ErrInvalidEnvelope, fault.ErrBadRequest)
	}
	return e.Move, nil
}

// reject unknown fields and trailing data
func strictDecode(b []byte, v interface{}) error {
	d := json.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	if err := d.Decode(v); nil != err {
		return err
	}
	if d.More() {
		return fault.ErrTrailingData
	}
	return nil
}
