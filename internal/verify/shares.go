package verify

import (
	"fmt"
	"math/big"

	"github.com/nickboucher/electionguard-verify/internal/bigmod"
	"github.com/nickboucher/electionguard-verify/internal/hashcompose"
	"github.com/nickboucher/electionguard-verify/internal/indices"
	"github.com/nickboucher/electionguard-verify/internal/invariant"
	"github.com/nickboucher/electionguard-verify/internal/model"
)

// getBallotContest returns the contest with the given id on ballot b, or nil
// if absent. A ballot that lists the same contest id more than once is a
// producer anomaly the reference implementation only warns about (it cannot
// disambiguate which entry is authoritative), so this mirrors
// original_source/electionguard_verify/utils.py's get_contest.
func getBallotContest(set *invariant.Set, b *model.CiphertextBallot, contestID string) *model.BallotContest {
	var found *model.BallotContest
	count := 0
	for _, c := range b.Contests {
		if c.ObjectID == contestID {
			count++
			found = c
		}
	}
	if count > 1 {
		set.Warn(fmt.Sprintf("ballot %s has duplicate contest %s; skipping its contribution", b.ObjectID, contestID))
		return nil
	}
	return found
}

// getBallotSelection returns the selection with the given id within bc, or
// nil if absent or duplicated (see getBallotContest).
func getBallotSelection(set *invariant.Set, bc *model.BallotContest, selectionID string) *model.BallotSelection {
	var found *model.BallotSelection
	count := 0
	for _, s := range bc.Selections {
		if s.ObjectID == selectionID {
			count++
			found = s
		}
	}
	if count > 1 {
		set.Warn(fmt.Sprintf("contest %s has duplicate selection %s; skipping its contribution", bc.ObjectID, selectionID))
		return nil
	}
	return found
}

// checkDirectShare verifies a guardian's own Chaum-Pedersen proof of correct
// partial decryption against selection aggregate (Ā, B̄), per S6.
func checkDirectShare(set *invariant.Set, arith *bigmod.Arith, hc *hashcompose.Composer, qbar, g, abar, bbar *big.Int, idx *indices.Indices, share *model.TallyShare) {
	guardian := idx.Guardian(share.GuardianID)
	known := guardian != nil && len(guardian.CoefficientCommitments) > 0
	if !set.Ensure("guardian id is known", known) {
		return
	}
	ki := guardian.CoefficientCommitments[0].Int()
	checkDecryptionProof(set, arith, hc, qbar, g, abar, bbar, ki, share.Share.Int(), share.Proof)
}

// checkRecoveredPart verifies one available guardian's recovery contribution
// toward a missing guardian's share, per S7. The final identity uses the
// part's published recovery key in place of the guardian's own coefficient
// commitment, since the verifier does not recompute the Lagrange-weighted
// product of coefficient commitments (the exponents are not published).
func checkRecoveredPart(set *invariant.Set, arith *bigmod.Arith, hc *hashcompose.Composer, qbar, g, abar, bbar *big.Int, part *model.RecoveredPart) {
	if !set.Ensure("recovery key is present", part.RecoveryKey != nil) {
		return
	}
	checkDecryptionProof(set, arith, hc, qbar, g, abar, bbar, part.RecoveryKey.Int(), part.Share.Int(), part.Proof)
}

// checkDecryptionProof is the Chaum-Pedersen verification shared by direct
// shares and recovered parts: the proof (a, b, c, v) over
// message m is checked against base (the guardian's commitment or recovery
// key) and the selection aggregate (Ā, B̄).
func checkDecryptionProof(set *invariant.Set, arith *bigmod.Arith, hc *hashcompose.Composer, qbar, g, abar, bbar, base, m *big.Int, proof *model.CPProof) {
	if proof == nil {
		set.Ensure("decryption proof is present", false)
		return
	}
	a := proof.Pad.Int()
	b := proof.Data.Int()
	c := proof.Challenge.Int()
	v := proof.Response.Int()

	set.Ensure("vᵢ ∈ ℤ_q", arith.IsInBoundsQ(v))
	set.Ensure("aᵢ is a q-th residue mod p", arith.IsValidResidue(a))
	set.Ensure("bᵢ is a q-th residue mod p", arith.IsValidResidue(b))

	cExpected := hc.HashElems(qbar, abar, bbar, a, b, m)
	set.Ensure("cᵢ == HashElems(Q̄, Ā, B̄, aᵢ, bᵢ, Mᵢ)", c.Cmp(cExpected) == 0)

	lhsM := arith.PowP(abar, v)
	rhsM := arith.MulP(b, arith.PowP(m, c))
	set.Ensure("Āᵛⁱ ≡ bᵢ·Mᵢᶜⁱ (mod p)", lhsM.Cmp(rhsM) == 0)

	lhsG := arith.PowP(g, v)
	rhsG := arith.MulP(a, arith.PowP(base, c))
	set.Ensure("gᵛⁱ ≡ aᵢ·baseᶜⁱ (mod p)", lhsG.Cmp(rhsG) == 0)
}
