// Package model defines the immutable, deserialized election-artifact entity
// types the verification engine operates over. These types
// are produced once by the loader layer and never mutated afterward.
package model

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt wraps math/big.Int so the published artifact's decimal-string
// modular integers round-trip through JSON, and additionally through CBOR for
// the result cache and report store, without a second representation.
// A nil receiver marshals as "0", matching the producer's serializer.
type BigInt big.Int

// NewBigInt lifts a plain integer into a *BigInt.
func NewBigInt(x int64) *BigInt {
	return (*BigInt)(big.NewInt(x))
}

// Int returns the *math/big.Int view of i.
func (i *BigInt) Int() *big.Int {
	return (*big.Int)(i)
}

// String returns the decimal representation of i.
func (i *BigInt) String() string {
	if i == nil {
		return "0"
	}
	return (*big.Int)(i).String()
}

// MarshalText returns the decimal string representation of the big number.
func (i *BigInt) MarshalText() ([]byte, error) {
	if i == nil {
		return []byte("0"), nil
	}
	return (*big.Int)(i).MarshalText()
}

// UnmarshalText parses the text representation into the big number.
func (i *BigInt) UnmarshalText(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	return (*big.Int)(i).UnmarshalText(data)
}

// UnmarshalJSON supports both string ("123") and bare-numeric (123) forms,
// since different artifact producers serialize decimal BigInts either way.
func (i *BigInt) UnmarshalJSON(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	if len(data) >= 2 && data[0] == '"' {
		return i.UnmarshalText(data[1 : len(data)-1])
	}
	return i.UnmarshalText(data)
}

// MarshalCBOR explicitly encodes BigInt as a CBOR text string.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	txt, err := i.MarshalText()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(string(txt))
}

// UnmarshalCBOR decodes a CBOR text string into BigInt.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	return i.UnmarshalText([]byte(s))
}

// Equal reports whether i and j hold the same value; two nils are equal.
func (i *BigInt) Equal(j *BigInt) bool {
	if i == nil || j == nil {
		return (i == nil) == (j == nil)
	}
	return i.Int().Cmp(j.Int()) == 0
}
