// Package proto holds the gophvault.VaultService contract described in
// vault.proto: the messages, the service descriptor and a client stub.
//
// Messages are encoded in the protobuf wire format with protowire and sent
// through the gRPC codec registered under CodecName.
package proto

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	protov2 "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CodecName is the gRPC content subtype of every VaultService call.
const CodecName = "vaultproto"

// wireMessage is implemented by every VaultService message.
type wireMessage interface {
	marshalWire(b []byte) ([]byte, error)
	unmarshalWire(b []byte) error
}

type codec struct{}

// Marshal encodes VaultService messages with protowire and falls back to the
// protobuf runtime for generated messages.
func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.marshalWire(nil)
	case protov2.Message:
		return protov2.Marshal(m)
	default:
		return nil, fmt.Errorf("vault codec: cannot marshal %T", v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		return m.unmarshalWire(data)
	case protov2.Message:
		return protov2.Unmarshal(data, m)
	default:
		return fmt.Errorf("vault codec: cannot unmarshal into %T", v)
	}
}

func (codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(codec{})
}

var errMalformed = errors.New("vault codec: malformed message")

// fieldFunc decodes one field value from b and returns the bytes consumed,
// 0 for a field it does not know, or a negative protowire error code.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) int

func consumeFields(b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", errMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		m := 0
		if field != nil {
			m = field(num, typ, b)
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", errMalformed, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func skipFields(b []byte) error { return consumeFields(b, nil) }

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m wireMessage) ([]byte, error) {
	inner, err := m.marshalWire(nil)
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

// appendTimestamp writes t as a google.protobuf.Timestamp. The zero time is
// omitted.
func appendTimestamp(b []byte, num protowire.Number, t time.Time) ([]byte, error) {
	if t.IsZero() {
		return b, nil
	}
	ts := timestamppb.New(t)
	if err := ts.CheckValid(); err != nil {
		return nil, fmt.Errorf("vault codec: %w", err)
	}
	inner, err := protov2.Marshal(ts)
	if err != nil {
		return nil, fmt.Errorf("vault codec: %w", err)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

// consumeBytes copies the value; gRPC may reuse the receive buffer.
func consumeBytes(typ protowire.Type, b []byte, dst *[]byte) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = bytes.Clone(v)
	}
	return n
}

// consumeMessage decodes an embedded message into m. A decoding error of
// the embedded message is reported through errp.
func consumeMessage(typ protowire.Type, b []byte, m wireMessage, errp *error) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if err := m.unmarshalWire(v); err != nil {
		*errp = err
	}
	return n
}

func consumeTimestamp(typ protowire.Type, b []byte, dst *time.Time, errp *error) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	ts := &timestamppb.Timestamp{}
	if err := protov2.Unmarshal(v, ts); err != nil {
		*errp = fmt.Errorf("%w: created_at: %w", errMalformed, err)
		return n
	}
	if err := ts.CheckValid(); err != nil {
		*errp = fmt.Errorf("%w: created_at: %w", errMalformed, err)
		return n
	}
	*dst = ts.AsTime()
	return n
}
