package verify

import (
	"context"
	"math/big"

	"github.com/nickboucher/electionguard-verify/internal/bigmod"
	"github.com/nickboucher/electionguard-verify/internal/hashcompose"
	"github.com/nickboucher/electionguard-verify/internal/indices"
	"github.com/nickboucher/electionguard-verify/internal/invariant"
	"github.com/nickboucher/electionguard-verify/internal/model"
)

// stageS1 checks the election parameters bind the artifact to the fixed
// baseline group and to the published manifest.
func stageS1(b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, runID string) *invariant.Set {
	set := invariant.New("S1 Election Parameters", runID)
	c := b.Constants

	set.Ensure("p is correct", c.LargePrime.Int().Cmp(model.Baseline.P) == 0)
	set.Ensure("q is correct", c.SmallPrime.Int().Cmp(model.Baseline.Q) == 0)
	set.Ensure("r is correct", c.Cofactor.Int().Cmp(model.Baseline.R) == 0)
	set.Ensure("g is correct", c.Generator.Int().Cmp(model.Baseline.G) == 0)
	set.Ensure("k >= 1", b.Context.Quorum >= 1)
	set.Ensure("n >= k", b.Context.NumberOfGuardians >= b.Context.Quorum)

	descHash := b.Description.CryptoHash(hc)
	expected := hc.HashElems(c.LargePrime.Int(), c.SmallPrime.Int(), c.Generator.Int(),
		b.Context.NumberOfGuardians, b.Context.Quorum, descHash)
	set.Ensure("crypto base hash matches manifest", b.Context.CryptoBaseHash.Int().Cmp(expected) == 0)

	return set
}

// stageS2 checks every guardian's Schnorr proofs of knowledge and that the
// joint public key and extended base hash are correctly derived from them.
func stageS2(b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, runID string) *invariant.Set {
	set := invariant.New("S2 Guardian Public Keys", runID)
	g := b.Constants.Generator.Int()

	kAcc := arith.IntToP(1)
	for _, guardian := range b.Guardians {
		if !set.Ensure("guardian has at least one coefficient commitment", len(guardian.CoefficientCommitments) > 0) {
			continue
		}
		kAcc = arith.MulP(kAcc, guardian.CoefficientCommitments[0].Int())

		for j, proof := range guardian.CoefficientProofs {
			if j >= len(guardian.CoefficientCommitments) {
				set.Ensure("coefficient commitment exists for proof index", false)
				continue
			}
			k := guardian.CoefficientCommitments[j].Int()
			h := proof.Commitment.Int()

			cExpected := hc.HashElems(k, h)
			set.Ensure("c_{i,j} == HashElems(K_{i,j}, h_{i,j})", proof.Challenge.Int().Cmp(cExpected) == 0)

			lhs := arith.PowP(g, proof.Response.Int())
			rhs := arith.MulP(h, arith.PowP(k, proof.Challenge.Int()))
			set.Ensure("g^{u_{i,j}} ≡ h_{i,j}·K_{i,j}^{c_{i,j}} (mod p)", lhs.Cmp(rhs) == 0)
		}
	}

	set.Ensure("context.K == ∏ K_{i,0}", b.Context.JointPublicKey.Int().Cmp(kAcc) == 0)

	qbarExpected := hc.HashElems(b.Context.CryptoBaseHash.Int(), b.Context.JointPublicKey.Int())
	set.Ensure("Q̄ == HashElems(Q, K)", b.Context.CryptoExtendedBaseHash.Int().Cmp(qbarExpected) == 0)

	set.Warn("guardian challenge recomputation uses the producer's two-argument HashElems(K,h) rather than the official three-argument form")
	set.Warn("extended base hash recomputation uses the producer's two-argument HashElems(Q,K) rather than the official form over Q and every guardian public key")

	return set
}

type s3Item struct {
	ballotID string
	sel      *model.BallotSelection
}

// stageS3 checks every cast ballot selection's disjunctive Chaum-Pedersen
// zero-or-one proof. This is the stage the --parallel fan-out targets, since
// it dominates runtime.
func stageS3(ctx context.Context, b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, parallel bool, runID string) *invariant.Set {
	set := invariant.New("S3 Ballot Selection Encryptions", runID)
	g := b.Constants.Generator.Int()
	k := b.Context.JointPublicKey.Int()
	qbar := b.Context.CryptoExtendedBaseHash.Int()

	items := make([]s3Item, 0)
	for _, ballot := range b.CastBallots {
		if ballot.State != model.BallotStateCast {
			continue
		}
		for _, contest := range ballot.Contests {
			for _, sel := range contest.Selections {
				items = append(items, s3Item{ballotID: ballot.ObjectID, sel: sel})
			}
		}
	}

	forEachIndex(ctx, parallel, len(items), func(i int) {
		checkS3Selection(set, arith, hc, qbar, g, k, items[i].sel)
	})

	set.Warn("one-branch K-half identity g^{c1}·K^{v1} ≡ b1·β^{c1} is not checked because the producer's published artifact fails it")

	return set
}

func checkS3Selection(set *invariant.Set, arith *bigmod.Arith, hc *hashcompose.Composer, qbar, g, k *big.Int, sel *model.BallotSelection) {
	if sel.Proof == nil {
		set.Ensure("selection proof is present", false)
		return
	}
	alpha := sel.Ciphertext.Pad.Int()
	beta := sel.Ciphertext.Data.Int()
	proof := sel.Proof
	a0, b0 := proof.ProofZeroPad.Int(), proof.ProofZeroData.Int()
	a1, b1 := proof.ProofOnePad.Int(), proof.ProofOneData.Int()
	c0, c1 := proof.ProofZeroChallenge.Int(), proof.ProofOneChallenge.Int()
	v0, v1 := proof.ProofZeroResponse.Int(), proof.ProofOneResponse.Int()
	c := proof.Challenge.Int()

	set.Ensure("α is a q-th residue mod p", arith.IsValidResidue(alpha))
	set.Ensure("β is a q-th residue mod p", arith.IsValidResidue(beta))
	set.Ensure("a₀ is a q-th residue mod p", arith.IsValidResidue(a0))
	set.Ensure("b₀ is a q-th residue mod p", arith.IsValidResidue(b0))
	set.Ensure("a₁ is a q-th residue mod p", arith.IsValidResidue(a1))
	set.Ensure("b₁ is a q-th residue mod p", arith.IsValidResidue(b1))
	set.Ensure("c₀ ∈ ℤ_q", arith.IsInBoundsQ(c0))
	set.Ensure("c₁ ∈ ℤ_q", arith.IsInBoundsQ(c1))
	set.Ensure("v₀ ∈ ℤ_q", arith.IsInBoundsQ(v0))
	set.Ensure("v₁ ∈ ℤ_q", arith.IsInBoundsQ(v1))

	cExpected := hc.HashElems(qbar, alpha, beta, a0, b0, a1, b1)
	set.Ensure("c == HashElems(Q̄, α, β, a₀, b₀, a₁, b₁)", c.Cmp(cExpected) == 0)
	set.Ensure("c == (c₀ + c₁) mod q", c.Cmp(arith.AddQ(c0, c1)) == 0)

	lhsZeroG := arith.PowP(g, v0)
	rhsZeroG := arith.MulP(a0, arith.PowP(alpha, c0))
	set.Ensure("gᵛ⁰ = a₀αᶜ⁰ (mod p)", lhsZeroG.Cmp(rhsZeroG) == 0)

	lhsZeroK := arith.PowP(k, v0)
	rhsZeroK := arith.MulP(b0, arith.PowP(beta, c0))
	set.Ensure("Kᵛ⁰ = b₀βᶜ⁰ (mod p)", lhsZeroK.Cmp(rhsZeroK) == 0)

	lhsOneG := arith.PowP(g, v1)
	rhsOneG := arith.MulP(a1, arith.PowP(alpha, c1))
	set.Ensure("gᵛ¹ = a₁αᶜ¹ (mod p)", lhsOneG.Cmp(rhsOneG) == 0)
}

// stageS4 checks each cast ballot contest's placeholder count against the
// manifest's votes_allowed.
func stageS4(b *Bundle, arith *bigmod.Arith, idx *indices.Indices, runID string) *invariant.Set {
	set := invariant.New("S4 Vote Limits", runID)

	for _, ballot := range b.CastBallots {
		if ballot.State != model.BallotStateCast {
			continue
		}
		for _, bc := range ballot.Contests {
			cd := idx.Contest(bc.ObjectID)
			if set.Ensure("all contests appear in election description", cd != nil) {
				placeholders := 0
				for _, s := range bc.Selections {
					if s.IsPlaceholderSelection {
						placeholders++
					}
				}
				set.Ensure("placeholder count equals contest votes_allowed", placeholders == cd.VotesAllowed)
			}
			if bc.Proof != nil {
				set.Ensure("contest proof response ∈ ℤ_q", arith.IsInBoundsQ(bc.Proof.Response.Int()))
			} else {
				set.Ensure("contest proof response ∈ ℤ_q", false)
			}
		}
	}

	set.Warn("the full contest-aggregate Chaum-Pedersen proof cannot be checked because (A,B) and (a,b) are not published")
	return set
}

// stageS5 is intentionally empty: ballot chaining cannot be verified against
// this producer's artifacts.
func stageS5(runID string) *invariant.Set {
	set := invariant.New("S5 Ballot Chaining", runID)
	set.Warn("ballot chaining is unverifiable against this producer: ballots lack published order, the chain head H0 = H(Q̄), and device binding in the hash")
	return set
}

// stageS6 recomputes each selection's homomorphic aggregate from the cast
// ballots and checks every directly-decrypting guardian's share proof. It
// also asserts every manifest contest id and every coefficient validation
// set owner id are unique, so that indices.Indices's
// last-one-wins lookup semantics never silently paper over a producer
// anomaly.
func stageS6(b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, idx *indices.Indices, runID string) *invariant.Set {
	set := invariant.New("S6 Tally Aggregation + Direct Shares", runID)
	g := b.Constants.Generator.Int()
	qbar := b.Context.CryptoExtendedBaseHash.Int()

	contestIDCounts := make(map[string]int)
	for _, cd := range b.Description.Contests {
		contestIDCounts[cd.ObjectID]++
	}
	for id, count := range contestIDCounts {
		set.Ensure("contest id "+id+" is unique in the manifest", count == 1)
	}

	guardianIDCounts := make(map[string]int)
	for _, guardian := range b.Guardians {
		guardianIDCounts[guardian.OwnerID]++
	}
	for id, count := range guardianIDCounts {
		set.Ensure("guardian id "+id+" is unique", count == 1)
	}

	for contestID, pc := range b.PlaintextTally.Contests {
		for selID, psel := range pc.Selections {
			a := arith.IntToP(1)
			bb := arith.IntToP(1)
			for _, ballot := range b.CastBallots {
				if ballot.State != model.BallotStateCast {
					continue
				}
				bc := getBallotContest(set, ballot, contestID)
				if bc == nil {
					continue
				}
				sel := getBallotSelection(set, bc, selID)
				if sel == nil {
					continue
				}
				a = arith.MulP(a, sel.Ciphertext.Pad.Int())
				bb = arith.MulP(bb, sel.Ciphertext.Data.Int())
			}

			set.Ensure("A = ∏ⱼαⱼ", psel.Message.Pad.Int().Cmp(a) == 0)
			set.Ensure("B = ∏ⱼβⱼ", psel.Message.Data.Int().Cmp(bb) == 0)

			abar := psel.Message.Pad.Int()
			bbar := psel.Message.Data.Int()
			for _, share := range psel.Shares {
				if share.Proof == nil {
					continue
				}
				checkDirectShare(set, arith, hc, qbar, g, abar, bbar, idx, share)
			}
		}
	}

	return set
}

// stageS7 checks the structural xor of every tally share and the recovery
// proofs of every recovered-share part.
func stageS7(b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, runID string) *invariant.Set {
	set := invariant.New("S7 Missing-Guardian Recovered Shares", runID)
	g := b.Constants.Generator.Int()
	qbar := b.Context.CryptoExtendedBaseHash.Int()

	for _, pc := range b.PlaintextTally.Contests {
		for _, psel := range pc.Selections {
			abar := psel.Message.Pad.Int()
			bbar := psel.Message.Data.Int()
			for _, share := range psel.Shares {
				set.Ensure("tally share contains exactly one proof or recovered part", share.IsDirect() != share.IsRecovered())
				if share.IsRecovered() {
					for _, part := range share.RecoveredParts {
						checkRecoveredPart(set, arith, hc, qbar, g, abar, bbar, part)
					}
				}
			}
		}
	}

	set.Warn("share reconstruction is not independently recomputed because the Lagrange coefficients combining guardian coefficient commitments are not published")
	return set
}

// stageS8 checks the decryption law for every contest tally and for every
// spoiled ballot's per-contest decryption.
func stageS8(b *Bundle, arith *bigmod.Arith, hc *hashcompose.Composer, idx *indices.Indices, runID string) *invariant.Set {
	set := invariant.New("S8 Decryption Equations & Spoiled Ballots", runID)
	g := b.Constants.Generator.Int()
	qbar := b.Context.CryptoExtendedBaseHash.Int()

	checkDecryption := func(psel *model.PlaintextTallySelection) {
		bbar := psel.Message.Data.Int()
		prodM := arith.IntToP(1)
		for _, share := range psel.Shares {
			if share.Share == nil {
				continue
			}
			prodM = arith.MulP(prodM, share.Share.Int())
		}
		m := psel.Value.Int()
		rhs := arith.MulP(m, prodM)
		set.Ensure("B̄ == M · ∏Mᵢ (mod p)", bbar.Cmp(rhs) == 0)

		gT := arith.PowP(g, big.NewInt(psel.Tally))
		set.Ensure("M = gᵗ mod p", m.Cmp(gT) == 0)
	}

	for contestID, pc := range b.PlaintextTally.Contests {
		set.Ensure("contest id is known", idx.Contest(contestID) != nil)
		for _, psel := range pc.Selections {
			checkDecryption(psel)
		}
	}

	for _, contests := range b.PlaintextTally.SpoiledBallots {
		for contestID, pc := range contests {
			set.Ensure("spoiled ballot contest id is known", idx.Contest(contestID) != nil)
			for _, psel := range pc.Selections {
				abar := psel.Message.Pad.Int()
				bbar := psel.Message.Data.Int()
				for _, share := range psel.Shares {
					switch {
					case share.IsDirect():
						checkDirectShare(set, arith, hc, qbar, g, abar, bbar, idx, share)
					case share.IsRecovered():
						for _, part := range share.RecoveredParts {
							checkRecoveredPart(set, arith, hc, qbar, g, abar, bbar, part)
						}
					default:
						set.Ensure("spoiled ballot tally share contains exactly one proof or recovered part", false)
					}
				}
				checkDecryption(psel)
			}
		}
	}

	return set
}
