// Package osc implements the engine's control plane: a UDP server that
// decodes Open Sound Control messages, a router matching the address
// grammar against the model, a value-coercion pipeline for grouped
// parameter payloads, and the /request/init snapshot reply.
//
// The wire codec is hand-built: fixed framing, explicit big-endian
// fields, no reflection. The engine only ever needs plain messages
// with int/float/string/blob arguments, so a full OSC library would
// buy nothing over these two hundred lines.
package osc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformed is returned by Decode when a datagram does not parse as
// a well-formed OSC message.
var ErrMalformed = errors.New("osc: malformed message")

// Message is one decoded (or to-be-encoded) OSC message: an address
// pattern plus a type-tagged argument list.
type Message struct {
	Address string
	Args    []any // int32, float32, string, or []byte per the type tag
}

// pad4 returns n rounded up to the next multiple of 4, the alignment
// every OSC string and blob field uses.
func pad4(n int) int {
	return (n + 3) &^ 3
}

// Decode parses one UDP datagram into a Message. It accepts only
// plain messages; bundles are never produced or consumed.
func Decode(data []byte) (Message, error) {
	if len(data) == 0 || data[0] != '/' {
		return Message{}, ErrMalformed
	}

	addr, rest, err := readOSCString(data)
	if err != nil {
		return Message{}, err
	}

	if len(rest) == 0 || rest[0] != ',' {
		// No type tag string: a zero-argument message.
		return Message{Address: addr}, nil
	}

	tags, rest, err := readOSCString(rest)
	if err != nil {
		return Message{}, err
	}
	tags = tags[1:] // drop the leading ','
	if len(tags) == 0 {
		// An empty type tag string is also a zero-argument message.
		return Message{Address: addr}, nil
	}

	args := make([]any, 0, len(tags))
	for _, tag := range tags {
		switch tag {
		case 'i':
			if len(rest) < 4 {
				return Message{}, ErrMalformed
			}
			args = append(args, int32(binary.BigEndian.Uint32(rest[:4])))
			rest = rest[4:]
		case 'f':
			if len(rest) < 4 {
				return Message{}, ErrMalformed
			}
			bits := binary.BigEndian.Uint32(rest[:4])
			args = append(args, math.Float32frombits(bits))
			rest = rest[4:]
		case 's':
			s, r, err := readOSCString(rest)
			if err != nil {
				return Message{}, err
			}
			args = append(args, s)
			rest = r
		case 'b':
			if len(rest) < 4 {
				return Message{}, ErrMalformed
			}
			n := int(binary.BigEndian.Uint32(rest[:4]))
			rest = rest[4:]
			if n < 0 || len(rest) < pad4(n) {
				return Message{}, ErrMalformed
			}
			blob := make([]byte, n)
			copy(blob, rest[:n])
			args = append(args, blob)
			rest = rest[pad4(n):]
		default:
			return Message{}, fmt.Errorf("osc: unsupported type tag %q", tag)
		}
	}

	return Message{Address: addr, Args: args}, nil
}

// Encode serializes a Message to its OSC wire form. Supported argument
// types are int32, int, float64, float32, string and []byte; any other
// type is an error.
func Encode(msg Message) ([]byte, error) {
	var buf []byte
	buf = appendOSCString(buf, msg.Address)

	tags := make([]byte, 0, len(msg.Args)+1)
	tags = append(tags, ',')
	var argBytes []byte

	for _, arg := range msg.Args {
		switch v := arg.(type) {
		case int32:
			tags = append(tags, 'i')
			argBytes = appendInt32(argBytes, v)
		case int:
			tags = append(tags, 'i')
			argBytes = appendInt32(argBytes, int32(v))
		case float32:
			tags = append(tags, 'f')
			argBytes = appendFloat32(argBytes, v)
		case float64:
			tags = append(tags, 'f')
			argBytes = appendFloat32(argBytes, float32(v))
		case string:
			tags = append(tags, 's')
			argBytes = appendOSCString(argBytes, v)
		case []byte:
			tags = append(tags, 'b')
			argBytes = appendInt32(argBytes, int32(len(v)))
			argBytes = append(argBytes, v...)
			for len(argBytes)%4 != 0 {
				argBytes = append(argBytes, 0)
			}
		default:
			return nil, fmt.Errorf("osc: unsupported argument type %T", arg)
		}
	}

	buf = appendOSCString(buf, string(tags))
	buf = append(buf, argBytes...)
	return buf, nil
}

func readOSCString(b []byte) (string, []byte, error) {
	end := -1
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", nil, ErrMalformed
	}
	s := string(b[:end])
	n := pad4(end + 1)
	if n > len(b) {
		return "", nil, ErrMalformed
	}
	return s, b[n:], nil
}

func appendOSCString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	buf = append(buf, 0)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func appendInt32(buf []byte, v int32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...)
}

func appendFloat32(buf []byte, v float32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], math.Float32bits(v))
	return append(buf, tmp[:]...)
}

// AddressParts splits an address pattern like "/effect/1/segment/2/color"
// into its slash-separated components, discarding the leading empty
// element.
func AddressParts(address string) []string {
	trimmed := strings.TrimPrefix(address, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
