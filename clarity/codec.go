package clarity

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

var (
	ErrTruncated   = errors.New("clarity: truncated value")
	ErrUnknownType = errors.New("clarity: unknown type prefix")
	ErrOutOfRange  = errors.New("clarity: integer out of range")
	ErrTrailing    = errors.New("clarity: trailing bytes after value")
)

// maxDepth bounds nesting when decoding untrusted node responses.
const maxDepth = 32

var (
	uint128Limit = new(big.Int).Lsh(big.NewInt(1), 128)
	int128Limit  = new(big.Int).Lsh(big.NewInt(1), 127)
)

// Serialize encodes v in consensus format.
func Serialize(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeHex encodes v as the "0x"-prefixed hex the node API expects.
func SerializeHex(v Value) (string, error) {
	b, err := Serialize(v)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

// Deserialize decodes exactly one value from b.
func Deserialize(b []byte) (Value, error) {
	r := bytes.NewReader(b)
	v, err := decode(r, 0)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailing, r.Len())
	}
	return v, nil
}

// DeserializeHex decodes a "0x"-prefixed (or bare) hex string.
func DeserializeHex(s string) (Value, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("clarity: bad hex: %w", err)
	}
	return Deserialize(b)
}

func encode(buf *bytes.Buffer, v Value) error {
	if v == nil {
		return errors.New("clarity: nil value")
	}
	buf.WriteByte(byte(v.Type()))
	switch x := v.(type) {
	case Int:
		return writeInt128(buf, x.V)
	case UInt:
		if x.V == nil || x.V.Sign() < 0 || x.V.Cmp(uint128Limit) >= 0 {
			return fmt.Errorf("uint %v: %w", x.V, ErrOutOfRange)
		}
		writeFixed16(buf, x.V)
	case Buffer:
		writeLen(buf, len(x))
		buf.Write(x)
	case Bool, None:
	case StandardPrincipal:
		buf.WriteByte(x.Version)
		buf.Write(x.Hash[:])
	case ContractPrincipal:
		buf.WriteByte(x.Address.Version)
		buf.Write(x.Address.Hash[:])
		if len(x.Name) == 0 || len(x.Name) > 128 {
			return fmt.Errorf("clarity: contract name length %d", len(x.Name))
		}
		buf.WriteByte(byte(len(x.Name)))
		buf.WriteString(x.Name)
	case ResponseOk:
		return encode(buf, x.V)
	case ResponseErr:
		return encode(buf, x.V)
	case Some:
		return encode(buf, x.V)
	case List:
		writeLen(buf, len(x))
		for _, item := range x {
			if err := encode(buf, item); err != nil {
				return err
			}
		}
	case Tuple:
		writeLen(buf, len(x))
		for _, k := range x.Keys() {
			if len(k) == 0 || len(k) > 128 {
				return fmt.Errorf("clarity: tuple key length %d", len(k))
			}
			buf.WriteByte(byte(len(k)))
			buf.WriteString(k)
			if err := encode(buf, x[k]); err != nil {
				return err
			}
		}
	case StringASCII:
		writeLen(buf, len(x))
		buf.WriteString(string(x))
	case StringUTF8:
		writeLen(buf, len(x))
		buf.WriteString(string(x))
	default:
		return fmt.Errorf("%w: %T", ErrUnknownType, v)
	}
	return nil
}

func writeLen(buf *bytes.Buffer, n int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	buf.Write(b[:])
}

func writeFixed16(buf *bytes.Buffer, n *big.Int) {
	var b [16]byte
	n.FillBytes(b[:])
	buf.Write(b[:])
}

func writeInt128(buf *bytes.Buffer, n *big.Int) error {
	if n == nil || n.Cmp(int128Limit) >= 0 || n.Cmp(new(big.Int).Neg(int128Limit)) < 0 {
		return fmt.Errorf("int %v: %w", n, ErrOutOfRange)
	}
	u := new(big.Int).Set(n)
	if u.Sign() < 0 {
		u.Add(u, uint128Limit) // two's complement
	}
	writeFixed16(buf, u)
	return nil
}

func decode(r *bytes.Reader, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, errors.New("clarity: value nested too deeply")
	}
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, ErrTruncated
	}
	switch Type(prefix) {
	case TypeInt:
		b, err := readN(r, 16)
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(b)
		if b[0]&0x80 != 0 {
			n.Sub(n, uint128Limit)
		}
		return Int{V: n}, nil
	case TypeUInt:
		b, err := readN(r, 16)
		if err != nil {
			return nil, err
		}
		return UInt{V: new(big.Int).SetBytes(b)}, nil
	case TypeBuffer:
		b, err := readPrefixed(r)
		if err != nil {
			return nil, err
		}
		return Buffer(b), nil
	case TypeBoolTrue:
		return Bool(true), nil
	case TypeBoolFalse:
		return Bool(false), nil
	case TypeStandardPrincipal:
		return readPrincipal(r)
	case TypeContractPrincipal:
		p, err := readPrincipal(r)
		if err != nil {
			return nil, err
		}
		nlen, err := r.ReadByte()
		if err != nil {
			return nil, ErrTruncated
		}
		name, err := readN(r, int(nlen))
		if err != nil {
			return nil, err
		}
		return ContractPrincipal{Address: p, Name: string(name)}, nil
	case TypeResponseOk:
		v, err := decode(r, depth+1)
		if err != nil {
			return nil, err
		}
		return ResponseOk{V: v}, nil
	case TypeResponseErr:
		v, err := decode(r, depth+1)
		if err != nil {
			return nil, err
		}
		return ResponseErr{V: v}, nil
	case TypeOptionalNone:
		return None{}, nil
	case TypeOptionalSome:
		v, err := decode(r, depth+1)
		if err != nil {
			return nil, err
		}
		return Some{V: v}, nil
	case TypeList:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		if int64(n) > int64(r.Len()) {
			return nil, ErrTruncated
		}
		list := make(List, 0, n)
		for i := uint32(0); i < n; i++ {
			v, err := decode(r, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case TypeTuple:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		if int64(n) > int64(r.Len()) {
			return nil, ErrTruncated
		}
		t := make(Tuple, n)
		for i := uint32(0); i < n; i++ {
			klen, err := r.ReadByte()
			if err != nil {
				return nil, ErrTruncated
			}
			k, err := readN(r, int(klen))
			if err != nil {
				return nil, err
			}
			v, err := decode(r, depth+1)
			if err != nil {
				return nil, err
			}
			t[string(k)] = v
		}
		return t, nil
	case TypeStringASCII:
		b, err := readPrefixed(r)
		if err != nil {
			return nil, err
		}
		return StringASCII(b), nil
	case TypeStringUTF8:
		b, err := readPrefixed(r)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errors.New("clarity: invalid utf-8 string")
		}
		return StringUTF8(b), nil
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, prefix)
}

func readN(r *bytes.Reader, n int) ([]byte, error) {
	if n > r.Len() {
		return nil, ErrTruncated
	}
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil && n > 0 {
		return nil, ErrTruncated
	}
	return b, nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func readPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Len()) {
		return nil, ErrTruncated
	}
	return readN(r, int(n))
}

func readPrincipal(r *bytes.Reader) (StandardPrincipal, error) {
	var p StandardPrincipal
	b, err := readN(r, 21)
	if err != nil {
		return p, err
	}
	p.Version = b[0]
	copy(p.Hash[:], b[1:])
	return p, nil
}
