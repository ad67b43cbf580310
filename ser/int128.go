package ser

import (
	"math/big"
)

// Uint128 is an unsigned 128-bit integer split into two halves.
type Uint128 struct {
	High uint64
	Low  uint64
}

// Int128 is a two's complement signed 128-bit integer split into two halves.
type Int128 struct {
	High int64
	Low  uint64
}

// U128 widens a uint64.
func U128(v uint64) Uint128 { return Uint128{Low: v} }

// I128 sign-extends an int64.
func I128(v int64) Int128 {
	if v < 0 {
		return Int128{High: -1, Low: uint64(v)}
	}
	return Int128{Low: uint64(v)}
}

// Big returns v as a big.Int.
func (v Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(v.High)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(v.Low))
}

func (v Uint128) String() string { return v.Big().String() }

// Compare orders two Uint128 values numerically.
func (v Uint128) Compare(o Uint128) int {
	switch {
	case v.High < o.High:
		return -1
	case v.High > o.High:
		return 1
	case v.Low < o.Low:
		return -1
	case v.Low > o.Low:
		return 1
	}
	return 0
}

// Big returns v as a big.Int.
func (v Int128) Big() *big.Int {
	b := big.NewInt(v.High)
	b.Lsh(b, 64)
	return b.Add(b, new(big.Int).SetUint64(v.Low))
}

func (v Int128) String() string { return v.Big().String() }

// Compare orders two Int128 values numerically.
func (v Int128) Compare(o Int128) int {
	switch {
	case v.High < o.High:
		return -1
	case v.High > o.High:
		return 1
	case v.Low < o.Low:
		return -1
	case v.Low > o.Low:
		return 1
	}
	return 0
}
