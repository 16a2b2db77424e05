package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/oderahub/stackpledge/clarity"
	"github.com/oderahub/stackpledge/types"
)

var ErrUnexpectedShape = errors.New("unexpected ledger value shape")

// unwrapOptional turns (optional X) into *T: none is nil without error,
// some is decoded with decode.
func unwrapOptional[T any](v clarity.Value, decode func(clarity.Value) (T, error)) (*T, error) {
	switch x := unwrapResponse(v).(type) {
	case clarity.None:
		return nil, nil
	case clarity.Some:
		out, err := decode(x.V)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, fmt.Errorf("%w: want optional, got %s", ErrUnexpectedShape, v.Type())
}

// unwrapResponse strips an (ok ...) wrapper if the contract returned one.
func unwrapResponse(v clarity.Value) clarity.Value {
	if ok, isOk := v.(clarity.ResponseOk); isOk {
		return ok.V
	}
	return v
}

func asTuple(v clarity.Value) (clarity.Tuple, error) {
	t, ok := v.(clarity.Tuple)
	if !ok {
		return nil, fmt.Errorf("%w: want tuple, got %s", ErrUnexpectedShape, v.Type())
	}
	return t, nil
}

func asUint(v clarity.Value, name string) (uint64, error) {
	u, ok := v.(clarity.UInt)
	if !ok {
		return 0, fmt.Errorf("%w: %s: want uint, got %s", ErrUnexpectedShape, name, v.Type())
	}
	n, err := u.Uint64()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func field(t clarity.Tuple, name string) (clarity.Value, error) {
	v, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrUnexpectedShape, name)
	}
	return v, nil
}

func uintField(t clarity.Tuple, name string) (uint64, error) {
	v, err := field(t, name)
	if err != nil {
		return 0, err
	}
	return asUint(v, name)
}

func principalField(t clarity.Tuple, name string) (string, error) {
	v, err := field(t, name)
	if err != nil {
		return "", err
	}
	switch p := v.(type) {
	case clarity.StandardPrincipal:
		return p.String(), nil
	case clarity.ContractPrincipal:
		return p.String(), nil
	}
	return "", fmt.Errorf("%w: %s: want principal, got %s", ErrUnexpectedShape, name, v.Type())
}

func stringField(t clarity.Tuple, name string) (string, error) {
	v, err := field(t, name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case clarity.StringUTF8:
		return string(s), nil
	case clarity.StringASCII:
		return string(s), nil
	}
	return "", fmt.Errorf("%w: %s: want string, got %s", ErrUnexpectedShape, name, v.Type())
}

func decodeCommitment(v clarity.Value, id uint64) (types.Commitment, error) {
	c := types.Commitment{ID: id}
	t, err := asTuple(v)
	if err != nil {
		return c, err
	}
	if c.Creator, err = principalField(t, "creator"); err != nil {
		return c, err
	}
	if c.Judge, err = principalField(t, "judge"); err != nil {
		return c, err
	}
	if c.Description, err = stringField(t, "description"); err != nil {
		return c, err
	}
	if c.StakeAmount, err = uintField(t, "stake-amount"); err != nil {
		return c, err
	}
	deadline, err := uintField(t, "deadline-block")
	if err != nil {
		return c, err
	}
	if deadline > math.MaxInt64 {
		return c, fmt.Errorf("%w: deadline-block %d out of range", ErrUnexpectedShape, deadline)
	}
	c.DeadlineBlock = int64(deadline)
	status, err := uintField(t, "status")
	if err != nil {
		return c, err
	}
	// Compared before narrowing so that e.g. u257 is not read as Active.
	if status > math.MaxUint8 || !types.Status(status).Valid() {
		return c, fmt.Errorf("%w: status code %d", ErrUnexpectedShape, status)
	}
	c.Status = types.Status(status)
	return c, nil
}

func decodeUserStats(v clarity.Value) (types.UserStats, error) {
	var s types.UserStats
	t, err := asTuple(v)
	if err != nil {
		return s, err
	}
	if s.TotalCommitments, err = uintField(t, "total-commitments"); err != nil {
		return s, err
	}
	if s.TotalStaked, err = uintField(t, "total-staked"); err != nil {
		return s, err
	}
	if s.SuccessfulCommitments, err = uintField(t, "successful-commitments"); err != nil {
		return s, err
	}
	if s.FailedCommitments, err = uintField(t, "failed-commitments"); err != nil {
		return s, err
	}
	return s, nil
}

func decodeGlobalStats(v clarity.Value) (types.GlobalStats, error) {
	var s types.GlobalStats
	t, err := asTuple(v)
	if err != nil {
		return s, err
	}
	if s.TotalCommitments, err = uintField(t, "total-commitments"); err != nil {
		return s, err
	}
	if s.TotalStaked, err = uintField(t, "total-staked"); err != nil {
		return s, err
	}
	if s.TotalBurned, err = uintField(t, "total-burned"); err != nil {
		return s, err
	}
	return s, nil
}
