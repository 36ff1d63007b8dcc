// Package modulation converts values to and from the compact bit format
// used on the wire:
//
//	nil          00
//	pair a b     11 <a> <b>
//	n >= 0       01 <width> <bits>
//	n < 0        10 <width> <bits>
//
// where <width> is k ones followed by a zero and <bits> is |n| written
// big-endian in 4k bits (k = 0 for zero). Segments are packed with funbit;
// the '0'/'1' text form is only the rendering of the packed bits.
package modulation

import (
	"errors"
	"fmt"
	"github.com/funvibe/funbit/pkg/funbit"
	"github.com/funvibe/galaxy/internal/ast"
	"strings"
)

var (
	// ErrUnsupported is returned when a value has no wire representation.
	ErrUnsupported = errors.New("value cannot be modulated")
	// ErrMalformed is returned for bit strings that do not decode.
	ErrMalformed = errors.New("malformed modulated data")
)

// Encode modulates a fully forced value.
func Encode(v ast.Value) (*ast.Encoded, error) {
	bits, err := EncodeToString(v)
	if err != nil {
		return nil, err
	}
	return &ast.Encoded{Bits: bits}, nil
}

// Decode demodulates an encoded payload.
func Decode(e *ast.Encoded) (ast.Value, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrMalformed)
	}
	return DecodeFromString(e.Bits)
}

// maxNibbles is the widest magnitude that fits an int64.
const maxNibbles = 16

// Wire tags, two bits each.
const (
	tagNil      = 0b00
	tagPositive = 0b01
	tagNegative = 0b10
	tagPair     = 0b11
)

// EncodeToString modulates v into its '0'/'1' text form.
func EncodeToString(v ast.Value) (string, error) {
	bs, err := EncodeBits(v)
	if err != nil {
		return "", err
	}
	return render(bs), nil
}

// DecodeFromString demodulates the '0'/'1' text form. The whole input must
// be consumed.
func DecodeFromString(s string) (ast.Value, error) {
	bs, err := parseBits(s)
	if err != nil {
		return nil, err
	}
	return DecodeBits(bs)
}

// EncodeBits modulates v into a packed bit string.
func EncodeBits(v ast.Value) (*funbit.BitString, error) {
	b := funbit.NewBuilder()
	if err := encode(b, v); err != nil {
		return nil, err
	}
	bs, err := funbit.Build(b)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", v.Inspect(), err)
	}
	return bs, nil
}

// DecodeBits demodulates a packed bit string. Trailing bits are an error.
func DecodeBits(bs *funbit.BitString) (ast.Value, error) {
	if bs == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrMalformed)
	}
	d := &decoder{data: bs.ToBytes(), length: bs.Length()}
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.pos != d.length {
		return nil, fmt.Errorf("%w: %d trailing bits", ErrMalformed, d.length-d.pos)
	}
	return v, nil
}

func encode(b *funbit.Builder, v ast.Value) error {
	switch t := v.(type) {
	case *ast.Literal:
		encodeNumber(b, t.Value)
		return nil
	case *ast.Pair:
		writeTag(b, tagPair)
		if err := encode(b, t.Left); err != nil {
			return err
		}
		return encode(b, t.Right)
	case *ast.Combinator:
		if t.Op == ast.OpNil {
			writeTag(b, tagNil)
			return nil
		}
	case *ast.ListLiteral:
		for _, el := range t.Elements {
			writeTag(b, tagPair)
			if err := encode(b, el); err != nil {
				return err
			}
		}
		writeTag(b, tagNil)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, v.Inspect())
}

func writeTag(b *funbit.Builder, tag uint64) {
	funbit.AddInteger(b, tag, funbit.WithSize(2))
}

func encodeNumber(b *funbit.Builder, n int64) {
	mag := uint64(n)
	if n < 0 {
		writeTag(b, tagNegative)
		mag = -mag
	} else {
		writeTag(b, tagPositive)
	}

	var nibbles uint
	for x := mag; x != 0; x >>= 4 {
		nibbles++
	}
	// k ones then a zero
	funbit.AddInteger(b, (uint64(1)<<nibbles-1)<<1, funbit.WithSize(nibbles+1))
	if nibbles > 0 {
		funbit.AddInteger(b, mag, funbit.WithSize(4*nibbles))
	}
}

// render writes bs as one '0' or '1' per bit, most significant first.
func render(bs *funbit.BitString) string {
	data := bs.ToBytes()
	n := bs.Length()
	var sb strings.Builder
	sb.Grow(int(n))
	for i := uint(0); i < n; i++ {
		if set, _ := funbit.GetBitValue(data, i); set {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// parseBits packs the '0'/'1' text form.
func parseBits(s string) (*funbit.BitString, error) {
	if s == "" {
		return funbit.NewBitStringFromBits(nil, 0), nil
	}
	b := funbit.NewBuilder()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '0' && c != '1' {
			return nil, fmt.Errorf("%w: invalid character %q at bit %d", ErrMalformed, c, i)
		}
		funbit.AddInteger(b, uint64(c-'0'), funbit.WithSize(1))
	}
	bs, err := funbit.Build(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return bs, nil
}

// decoder walks a packed bit string with an absolute cursor. Each segment is
// cut out with ExtractBits and matched on its own, since funbit's rest
// binding does not realign bits after an unaligned offset.
type decoder struct {
	data   []byte
	length uint
	pos    uint
}

// read matches the next n bits as an unsigned big-endian integer.
func (d *decoder) read(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if d.pos+n > d.length {
		return 0, fmt.Errorf("%w: unexpected end at bit %d", ErrMalformed, d.pos)
	}
	chunk, err := funbit.ExtractBits(d.data, d.pos, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var v uint64
	m := funbit.NewMatcher()
	funbit.Integer(m, &v, funbit.WithSize(n))
	if _, err := funbit.Match(m, funbit.NewBitStringFromBits(chunk, n)); err != nil {
		return 0, fmt.Errorf("%w: bit %d: %v", ErrMalformed, d.pos, err)
	}
	d.pos += n
	return v, nil
}

func (d *decoder) value() (ast.Value, error) {
	tag, err := d.read(2)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return ast.Nil, nil
	case tagPair:
		left, err := d.value()
		if err != nil {
			return nil, err
		}
		right, err := d.value()
		if err != nil {
			return nil, err
		}
		return &ast.Pair{Left: left, Right: right}, nil
	default:
		return d.number(tag == tagNegative)
	}
}

func (d *decoder) number(negative bool) (ast.Value, error) {
	var nibbles uint
	for {
		bit, err := d.read(1)
		if err != nil {
			return nil, err
		}
		if bit == 0 {
			break
		}
		nibbles++
		if nibbles > maxNibbles {
			return nil, fmt.Errorf("%w: number wider than 64 bits", ErrMalformed)
		}
	}

	mag, err := d.read(4 * nibbles)
	if err != nil {
		return nil, err
	}

	if negative {
		if mag > 1<<63 {
			return nil, fmt.Errorf("%w: number out of range", ErrMalformed)
		}
		return &ast.Literal{Value: int64(-mag)}, nil
	}
	if mag > 1<<63-1 {
		return nil, fmt.Errorf("%w: number out of range", ErrMalformed)
	}
	return &ast.Literal{Value: int64(mag)}, nil
}
