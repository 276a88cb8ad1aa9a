package model

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

func TestBigIntJSONQuoted(t *testing.T) {
	c := qt.New(t)

	var i BigInt
	c.Assert(json.Unmarshal([]byte(`"12345678901234567890"`), &i), qt.IsNil)
	c.Assert(i.String(), qt.Equals, "12345678901234567890")
}

func TestBigIntJSONBareNumeric(t *testing.T) {
	c := qt.New(t)

	var i BigInt
	c.Assert(json.Unmarshal([]byte(`42`), &i), qt.IsNil)
	c.Assert(i.String(), qt.Equals, "42")
}

func TestBigIntRoundTripJSON(t *testing.T) {
	c := qt.New(t)

	want := NewBigInt(987654321)
	blob, err := json.Marshal(want)
	c.Assert(err, qt.IsNil)

	var got BigInt
	c.Assert(json.Unmarshal(blob, &got), qt.IsNil)
	c.Assert(got.Equal(want), qt.IsTrue)
}

func TestBigIntRoundTripCBOR(t *testing.T) {
	c := qt.New(t)

	want := NewBigInt(-424242)
	blob, err := cbor.Marshal(want)
	c.Assert(err, qt.IsNil)

	var got BigInt
	c.Assert(cbor.Unmarshal(blob, &got), qt.IsNil)
	c.Assert(got.Equal(want), qt.IsTrue)
}

func TestBigIntEqualHandlesNil(t *testing.T) {
	c := qt.New(t)

	var a, b *BigInt
	c.Assert(a.Equal(b), qt.IsTrue)
	c.Assert(a.Equal(NewBigInt(0)), qt.IsFalse)
}
