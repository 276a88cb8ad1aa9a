package verify

import (
	"context"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nickboucher/electionguard-verify/internal/hashcompose"
	"github.com/nickboucher/electionguard-verify/internal/model"
)

// fixture assembles a small, internally-consistent Bundle against the real
// baseline group: one guardian, one contest with a real selection and its
// placeholder, one cast ballot, and a matching decrypted tally. Every
// ciphertext, Schnorr proof, and Chaum-Pedersen proof below is computed from
// its own secret/nonce rather than hand-picked, so the eight stages recompute
// and accept it exactly as they would a genuine producer artifact.
type fixture struct {
	p, q, g *big.Int
	hc      *hashcompose.Composer
	secret  *big.Int // guardian g1's secret key s
	k       *big.Int // joint public key K = g^s
}

func newFixture() *fixture {
	p := model.Baseline.P
	q := model.Baseline.Q
	g := model.Baseline.G
	hc := hashcompose.New(q)
	s := big.NewInt(918273645)
	k := new(big.Int).Exp(g, s, p)
	return &fixture{p: p, q: q, g: g, hc: hc, secret: s, k: k}
}

func bi(x *big.Int) *model.BigInt { return (*model.BigInt)(x) }

func (f *fixture) mulP(a, b *big.Int) *big.Int {
	z := new(big.Int).Mul(a, b)
	return z.Mod(z, f.p)
}

func (f *fixture) expP(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, f.p)
}

func (f *fixture) invP(x *big.Int) *big.Int {
	return new(big.Int).ModInverse(x, f.p)
}

func (f *fixture) modQ(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.q)
}

// guardian builds g1's coefficient commitment and Schnorr proof of knowledge
// of f.secret.
func (f *fixture) guardian() *model.CoefficientValidationSet {
	w := big.NewInt(135792468)
	h := f.expP(f.g, w)
	c := f.hc.HashElems(f.k, h)
	u := f.modQ(new(big.Int).Add(w, new(big.Int).Mul(c, f.secret)))

	return &model.CoefficientValidationSet{
		OwnerID:                "g1",
		CoefficientCommitments: []*model.BigInt{bi(f.k)},
		CoefficientProofs: []*model.SchnorrProof{{
			PublicKey:  bi(f.k),
			Commitment: bi(h),
			Challenge:  bi(c),
			Response:   bi(u),
		}},
	}
}

func (f *fixture) description() *model.Description {
	return &model.Description{
		Contests: []*model.ContestDescription{{
			ObjectID:     "contest-1",
			VotesAllowed: 1,
			Selections: []*model.SelectionDescription{
				{ObjectID: "sel-1"},
				{ObjectID: "sel-2"},
			},
		}},
	}
}

func (f *fixture) cryptoBaseHash(descHash *big.Int) *big.Int {
	return f.hc.HashElems(f.p, f.q, f.g, 1, 1, descHash)
}

// selection builds a cast ballot's encrypted selection for plaintext m (0 or
// 1), together with its disjunctive zero-or-one proof, via the standard
// honest-prover algorithm: the real branch m gets a Schnorr commitment under
// encryption nonce xi, the other branch is solved backward from chosen
// (challenge, response), and the two challenges are tied together by the
// Fiat-Shamir hash so their sum matches it.
func (f *fixture) selection(objectID string, placeholder bool, m int64, xi, realW, simC, simV *big.Int, qbar *big.Int) *model.BallotSelection {
	alpha := f.expP(f.g, xi)
	beta := f.mulP(f.expP(f.k, xi), f.expP(f.g, big.NewInt(m)))

	aReal := f.expP(f.g, realW)
	bReal := f.expP(f.k, realW)

	simIdx := int64(1) - m
	betaEffSim := f.mulP(beta, f.invP(f.expP(f.g, big.NewInt(simIdx))))
	aSim := f.mulP(f.expP(f.g, simV), f.invP(f.expP(alpha, simC)))
	bSim := f.mulP(f.expP(f.k, simV), f.invP(f.expP(betaEffSim, simC)))

	var a0, b0, a1, b1 *big.Int
	if m == 0 {
		a0, b0, a1, b1 = aReal, bReal, aSim, bSim
	} else {
		a0, b0, a1, b1 = aSim, bSim, aReal, bReal
	}

	c := f.hc.HashElems(qbar, alpha, beta, a0, b0, a1, b1)
	cReal := f.modQ(new(big.Int).Sub(c, simC))
	vReal := f.modQ(new(big.Int).Add(realW, new(big.Int).Mul(cReal, xi)))

	var c0, c1, v0, v1 *big.Int
	if m == 0 {
		c0, v0, c1, v1 = cReal, vReal, simC, simV
	} else {
		c1, v1, c0, v0 = cReal, vReal, simC, simV
	}

	return &model.BallotSelection{
		ObjectID:               objectID,
		IsPlaceholderSelection: placeholder,
		Ciphertext:             model.ElGamalCiphertext{Pad: bi(alpha), Data: bi(beta)},
		Proof: &model.DisjunctiveProof{
			ProofZeroPad:       bi(a0),
			ProofZeroData:      bi(b0),
			ProofOnePad:        bi(a1),
			ProofOneData:       bi(b1),
			ProofZeroChallenge: bi(c0),
			ProofOneChallenge:  bi(c1),
			ProofZeroResponse:  bi(v0),
			ProofOneResponse:   bi(v1),
			Challenge:          bi(c),
		},
	}
}

// decryptionProof builds a Chaum-Pedersen proof that abar^secret == m, the
// form both a guardian's direct share and a recovered part use.
func (f *fixture) decryptionProof(qbar, abar, bbar, m, nonce, secret *big.Int) *model.CPProof {
	a := f.expP(f.g, nonce)
	b := f.expP(abar, nonce)
	c := f.hc.HashElems(qbar, abar, bbar, a, b, m)
	v := f.modQ(new(big.Int).Add(nonce, new(big.Int).Mul(c, secret)))
	return &model.CPProof{Pad: bi(a), Data: bi(b), Challenge: bi(c), Response: bi(v)}
}

func (f *fixture) build() *Bundle {
	guardian := f.guardian()

	descHash := f.description().CryptoHash(f.hc)
	cryptoBaseHash := f.cryptoBaseHash(descHash)
	qbar := f.hc.HashElems(cryptoBaseHash, f.k)

	context := &model.Context{
		NumberOfGuardians:      1,
		Quorum:                 1,
		JointPublicKey:         bi(f.k),
		CryptoBaseHash:         bi(cryptoBaseHash),
		CryptoExtendedBaseHash: bi(qbar),
	}

	constants := &model.Constants{
		LargePrime: bi(f.p),
		SmallPrime: bi(f.q),
		Cofactor:   bi(model.Baseline.R),
		Generator:  bi(f.g),
	}

	sel1 := f.selection("sel-1", false, 1,
		big.NewInt(24681012), big.NewInt(11223344), big.NewInt(55667788), big.NewInt(99001122), qbar)
	sel2 := f.selection("sel-2", true, 0,
		big.NewInt(36912345), big.NewInt(44332211), big.NewInt(88776655), big.NewInt(22110099), qbar)

	ballot := &model.CiphertextBallot{
		ObjectID: "ballot-1",
		State:    model.BallotStateCast,
		Contests: []*model.BallotContest{{
			ObjectID:   "contest-1",
			Selections: []*model.BallotSelection{sel1, sel2},
			Proof:      &model.ConstantProof{Response: bi(big.NewInt(0)), Constant: 1},
		}},
	}

	abar := sel1.Ciphertext.Pad.Int()
	bbar := sel1.Ciphertext.Data.Int()
	mi := f.expP(abar, f.secret)
	shareProof := f.decryptionProof(qbar, abar, bbar, mi, big.NewInt(246813579), f.secret)

	psel := &model.PlaintextTallySelection{
		Message: &model.ElGamalCiphertext{Pad: bi(abar), Data: bi(bbar)},
		Value:   bi(f.g),
		Tally:   1,
		Shares: map[string]*model.TallyShare{
			"g1": {GuardianID: "g1", Share: bi(mi), Proof: shareProof},
		},
	}

	plaintextTally := &model.PlaintextTally{
		Contests: map[string]*model.PlaintextTallyContest{
			"contest-1": {Selections: map[string]*model.PlaintextTallySelection{"sel-1": psel}},
		},
	}

	return &Bundle{
		Description:    f.description(),
		Context:        context,
		Constants:      constants,
		CastBallots:    []*model.CiphertextBallot{ballot},
		PlaintextTally: plaintextTally,
		Guardians:      []*model.CoefficientValidationSet{guardian},
	}
}

func TestRunValidBundle(t *testing.T) {
	c := qt.New(t)
	b := newFixture().build()

	report := Run(context.Background(), b, Options{})

	c.Assert(report.Cancelled, qt.IsFalse)
	for _, stage := range report.Stages {
		c.Assert(stage.Valid, qt.IsTrue, qt.Commentf("stage %s failed: %v", stage.Name, stage.FailedLabels))
	}
	c.Assert(report.Valid, qt.IsTrue)
	c.Assert(report.Stages, qt.HasLen, 8)
}

func TestRunInvalidBundle_TallyShareXor(t *testing.T) {
	c := qt.New(t)
	b := newFixture().build()

	share := b.PlaintextTally.Contests["contest-1"].Selections["sel-1"].Shares["g1"]
	share.RecoveredParts = map[string]*model.RecoveredPart{
		"g2": {},
	}

	report := Run(context.Background(), b, Options{})

	c.Assert(report.Valid, qt.IsFalse)
	var sawS7 bool
	for _, stage := range report.Stages {
		if stage.Name == "S7 Missing-Guardian Recovered Shares" {
			sawS7 = true
			c.Assert(stage.Valid, qt.IsFalse)
		}
	}
	c.Assert(sawS7, qt.IsTrue)
}

func TestRunInvalidBundle_TamperedSelectionProof(t *testing.T) {
	c := qt.New(t)
	b := newFixture().build()

	sel := b.CastBallots[0].Contests[0].Selections[0]
	sel.Proof.ProofZeroResponse = bi(big.NewInt(1))

	report := Run(context.Background(), b, Options{})

	c.Assert(report.Valid, qt.IsFalse)
	c.Assert(report.Stages, qt.HasLen, 3)
	c.Assert(report.Stages[2].Name, qt.Equals, "S3 Ballot Selection Encryptions")
	c.Assert(report.Stages[2].Valid, qt.IsFalse)
}
