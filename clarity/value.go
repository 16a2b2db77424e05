// Package clarity implements the consensus serialization of Clarity values
// used by Stacks read-only calls and contract-call arguments.
package clarity

import (
	"fmt"
	"math/big"
	"sort"
)

// Type is the one-byte type prefix of a serialized value.
type Type byte

const (
	TypeInt               Type = 0x00
	TypeUInt              Type = 0x01
	TypeBuffer            Type = 0x02
	TypeBoolTrue          Type = 0x03
	TypeBoolFalse         Type = 0x04
	TypeStandardPrincipal Type = 0x05
	TypeContractPrincipal Type = 0x06
	TypeResponseOk        Type = 0x07
	TypeResponseErr       Type = 0x08
	TypeOptionalNone      Type = 0x09
	TypeOptionalSome      Type = 0x0a
	TypeList              Type = 0x0b
	TypeTuple             Type = 0x0c
	TypeStringASCII       Type = 0x0d
	TypeStringUTF8        Type = 0x0e
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeBuffer:
		return "buffer"
	case TypeBoolTrue, TypeBoolFalse:
		return "bool"
	case TypeStandardPrincipal:
		return "standard-principal"
	case TypeContractPrincipal:
		return "contract-principal"
	case TypeResponseOk:
		return "response-ok"
	case TypeResponseErr:
		return "response-err"
	case TypeOptionalNone:
		return "none"
	case TypeOptionalSome:
		return "some"
	case TypeList:
		return "list"
	case TypeTuple:
		return "tuple"
	case TypeStringASCII:
		return "string-ascii"
	case TypeStringUTF8:
		return "string-utf8"
	}
	return fmt.Sprintf("type(0x%02x)", byte(t))
}

// Value is a decoded Clarity value. Concrete types are the structs below.
type Value interface {
	Type() Type
}

type Int struct{ V *big.Int }
type UInt struct{ V *big.Int }
type Buffer []byte
type Bool bool
type StringASCII string
type StringUTF8 string
type List []Value

// StandardPrincipal is an account: c32 version byte plus hash160.
type StandardPrincipal struct {
	Version byte
	Hash    [20]byte
}

// ContractPrincipal is a deployed contract: its deployer plus the contract name.
type ContractPrincipal struct {
	Address StandardPrincipal
	Name    string
}

// ResponseOk and ResponseErr wrap the two branches of a (response ok err).
type ResponseOk struct{ V Value }
type ResponseErr struct{ V Value }

// None is the empty optional; Some carries a value.
type None struct{}
type Some struct{ V Value }

// Tuple maps field names to values. Serialization sorts names.
type Tuple map[string]Value

func (Int) Type() Type               { return TypeInt }
func (UInt) Type() Type              { return TypeUInt }
func (Buffer) Type() Type            { return TypeBuffer }
func (StandardPrincipal) Type() Type { return TypeStandardPrincipal }
func (ContractPrincipal) Type() Type { return TypeContractPrincipal }
func (ResponseOk) Type() Type        { return TypeResponseOk }
func (ResponseErr) Type() Type       { return TypeResponseErr }
func (None) Type() Type              { return TypeOptionalNone }
func (Some) Type() Type              { return TypeOptionalSome }
func (List) Type() Type              { return TypeList }
func (Tuple) Type() Type             { return TypeTuple }
func (StringASCII) Type() Type       { return TypeStringASCII }
func (StringUTF8) Type() Type        { return TypeStringUTF8 }

func (b Bool) Type() Type {
	if b {
		return TypeBoolTrue
	}
	return TypeBoolFalse
}

// NewUInt builds a uint value from a uint64.
func NewUInt(v uint64) UInt { return UInt{V: new(big.Int).SetUint64(v)} }

// NewInt builds an int value from an int64.
func NewInt(v int64) Int { return Int{V: big.NewInt(v)} }

// Uint64 returns the value if it fits in 64 bits.
func (u UInt) Uint64() (uint64, error) {
	if u.V == nil || !u.V.IsUint64() {
		return 0, fmt.Errorf("uint %v: %w", u.V, ErrOutOfRange)
	}
	return u.V.Uint64(), nil
}

// String renders the principal as a c32check address.
func (p StandardPrincipal) String() string {
	return EncodeAddress(p.Version, p.Hash)
}

func (p ContractPrincipal) String() string {
	return p.Address.String() + "." + p.Name
}

// Keys returns the tuple's field names in serialization order.
func (t Tuple) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
