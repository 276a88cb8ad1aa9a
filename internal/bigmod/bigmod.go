// Package bigmod implements the BigModArith service: arbitrary-precision
// modular arithmetic over the prime-order subgroup the election artifact's
// values live in. p is the 4096-bit safe prime, q the 256-bit subgroup order.
//
// ℤ_q-sized values (exponents, challenges, responses) are small enough to fit
// a fixed-width 256-bit integer, so bounds checks on them are fast-pathed
// through holiman/uint256 before falling back to math/big; ℤ_p-sized values
// never fit 256 bits and always go through math/big.
package bigmod

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Arith holds the two moduli a verification run is fixed to: p (ℤ*_p) and q
// (ℤ_q). It is immutable after construction and safe for concurrent use,
// since every operation only reads p and q and allocates fresh big.Int
// results.
type Arith struct {
	P *big.Int
	Q *big.Int
}

// New returns an Arith bound to the given p and q.
func New(p, q *big.Int) *Arith {
	return &Arith{P: new(big.Int).Set(p), Q: new(big.Int).Set(q)}
}

// MulP returns the product of factors mod p. With zero factors it returns the
// multiplicative identity 1, so callers can seed a running fold with
// a.MulP() and Mul into it.
func (a *Arith) MulP(factors ...*big.Int) *big.Int {
	acc := big.NewInt(1)
	for _, f := range factors {
		acc.Mul(acc, f)
		acc.Mod(acc, a.P)
	}
	return acc
}

// PowP returns base^exp mod p. exp is accepted as any non-negative integer;
// callers that know exp is a subgroup exponent may reduce it mod q themselves
// first, but PowP does not require that.
func (a *Arith) PowP(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, a.P)
}

// AddQ returns (a+b) mod q.
func (a *Arith) AddQ(x, y *big.Int) *big.Int {
	z := new(big.Int).Add(x, y)
	return z.Mod(z, a.Q)
}

// IntToP lifts a small integer into ℤ*_p. IntToP(1) is the multiplicative
// identity used by fold-accumulators such as MulP's empty product.
func (a *Arith) IntToP(x int64) *big.Int {
	return big.NewInt(x)
}

// IsValidResidue reports whether x is a q-th residue mod p, i.e. a member of
// the unique order-q subgroup of ℤ*_p: 1 ≤ x < p and x^q ≡ 1 (mod p).
func (a *Arith) IsValidResidue(x *big.Int) bool {
	if x == nil || x.Sign() < 1 || x.Cmp(a.P) >= 0 {
		return false
	}
	return new(big.Int).Exp(x, a.Q, a.P).Cmp(bigOne) == 0
}

// IsInBoundsQ reports whether 0 ≤ x < q. q is a 256-bit prime, so well-formed
// members are fast-pathed through a fixed-width uint256 comparison; anything
// that would overflow uint256 (a malformed artifact value) falls back to a
// plain big.Int comparison rather than panicking.
func (a *Arith) IsInBoundsQ(x *big.Int) bool {
	if x == nil || x.Sign() < 0 {
		return false
	}
	if x.BitLen() > 256 || a.Q.BitLen() > 256 {
		return x.Cmp(a.Q) < 0
	}
	xi, overflow := uint256.FromBig(x)
	if overflow {
		return false
	}
	qi, overflow := uint256.FromBig(a.Q)
	if overflow {
		return x.Cmp(a.Q) < 0
	}
	return xi.Lt(qi)
}

// IsInBoundsP reports whether 0 ≤ x < p.
func (a *Arith) IsInBoundsP(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(a.P) < 0
}

var bigOne = big.NewInt(1)
