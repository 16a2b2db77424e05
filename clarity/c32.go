package clarity

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Address versions.
const (
	VersionMainnetSingleSig byte = 22 // SP
	VersionMainnetMultiSig  byte = 20 // SM
	VersionTestnetSingleSig byte = 26 // ST
	VersionTestnetMultiSig  byte = 21 // SN
)

var (
	ErrBadAddress  = errors.New("malformed stacks address")
	ErrBadChecksum = errors.New("stacks address checksum mismatch")
)

var thirtyTwo = big.NewInt(32)

func c32Encode(data []byte) string {
	n := new(big.Int).SetBytes(data)
	var digits []byte
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, thirtyTwo, mod)
		digits = append(digits, c32Alphabet[mod.Int64()])
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		digits = append(digits, '0')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

func c32Decode(s string) ([]byte, error) {
	s = normalizeC32(s)
	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}
	n := new(big.Int)
	for i := zeros; i < len(s); i++ {
		d := strings.IndexByte(c32Alphabet, s[i])
		if d < 0 {
			return nil, fmt.Errorf("%w: invalid c32 character %q", ErrBadAddress, s[i])
		}
		n.Mul(n, thirtyTwo)
		n.Add(n, big.NewInt(int64(d)))
	}
	return append(make([]byte, zeros), n.Bytes()...), nil
}

func normalizeC32(s string) string {
	s = strings.ToUpper(s)
	return strings.NewReplacer("O", "0", "L", "1", "I", "1").Replace(s)
}

func checksum(version byte, hash []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, hash...))
	second := sha256.Sum256(first[:])
	return second[:4]
}

// EncodeAddress renders a version and hash160 as an "S"-prefixed c32check address.
func EncodeAddress(version byte, hash [20]byte) string {
	payload := append(hash[:], checksum(version, hash[:])...)
	return "S" + string(c32Alphabet[version&0x1f]) + c32Encode(payload)
}

// ParsePrincipal decodes an address like "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
// and verifies its checksum.
func ParsePrincipal(addr string) (StandardPrincipal, error) {
	var p StandardPrincipal
	if len(addr) < 3 || addr[0] != 'S' {
		return p, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}
	version := strings.IndexByte(c32Alphabet, normalizeC32(addr[1:2])[0])
	if version < 0 {
		return p, fmt.Errorf("%w: %q", ErrBadAddress, addr)
	}
	raw, err := c32Decode(addr[2:])
	if err != nil {
		return p, err
	}
	if len(raw) != 24 {
		return p, fmt.Errorf("%w: %q decodes to %d bytes", ErrBadAddress, addr, len(raw))
	}
	hash, sum := raw[:20], raw[20:]
	if !bytes.Equal(sum, checksum(byte(version), hash)) {
		return p, fmt.Errorf("%w: %q", ErrBadChecksum, addr)
	}
	p.Version = byte(version)
	copy(p.Hash[:], hash)
	return p, nil
}

// ParseContractPrincipal decodes "ADDRESS.contract-name".
func ParseContractPrincipal(id string) (ContractPrincipal, error) {
	addr, name, ok := strings.Cut(id, ".")
	if !ok || name == "" || len(name) > 128 {
		return ContractPrincipal{}, fmt.Errorf("%w: %q is not a contract id", ErrBadAddress, id)
	}
	p, err := ParsePrincipal(addr)
	if err != nil {
		return ContractPrincipal{}, err
	}
	return ContractPrincipal{Address: p, Name: name}, nil
}
