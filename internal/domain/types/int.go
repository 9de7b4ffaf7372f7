package types

import "math/big"

// Int is a signed integer of unbounded size. The zero value is 0.
type Int struct {
	v *big.Int
}

// NewInt returns n as an Int.
func NewInt(n int64) Int {
	return Int{v: big.NewInt(n)}
}

// ParseInt reads an optionally signed base-10 integer of any length.
func ParseInt(s string) (Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, false
	}
	return Int{v: v}, true
}

// CmpInt64 compares i with n and returns -1, 0 or +1.
func (i Int) CmpInt64(n int64) int {
	return i.big().Cmp(big.NewInt(n))
}

func (i Int) String() string {
	return i.big().String()
}

func (i Int) big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}
