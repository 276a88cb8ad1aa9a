package model

// Constants holds the fixed cryptographic parameters every artifact is
// expected to agree with: the 4096-bit safe prime P, its
// 256-bit subgroup order Q, the cofactor R = (P-1)/Q, and the subgroup
// generator G.
type Constants struct {
	LargePrime *BigInt `json:"large_prime"`
	SmallPrime *BigInt `json:"small_prime"`
	Cofactor   *BigInt `json:"cofactor"`
	Generator  *BigInt `json:"generator"`
}

// Context carries the per-election parameters that bind an election instance
// to the fixed Constants: guardian count, decryption quorum, the joint public
// key K, and the two base hashes Q, Q-bar.
type Context struct {
	NumberOfGuardians      int     `json:"number_of_guardians"`
	Quorum                 int     `json:"quorum"`
	JointPublicKey         *BigInt `json:"elgamal_public_key"`
	CryptoBaseHash         *BigInt `json:"crypto_base_hash"`
	CryptoExtendedBaseHash *BigInt `json:"crypto_extended_base_hash"`
}

// SelectionDescription is one selectable option on the published election
// manifest.
type SelectionDescription struct {
	ObjectID string `json:"object_id"`
}

// ContestDescription is one contest on the published election manifest, with
// its ordered selections and the number of votes a ballot may cast in it.
type ContestDescription struct {
	ObjectID     string                   `json:"object_id"`
	VotesAllowed int                      `json:"votes_allowed"`
	Selections   []*SelectionDescription  `json:"ballot_selections"`
}

// Description is the published election manifest: the ordered list of
// contests a well-formed ballot must account for.
type Description struct {
	Contests []*ContestDescription `json:"contests"`
}

// ContestByID returns the contest with the given id, or nil if absent.
func (d *Description) ContestByID(id string) *ContestDescription {
	for _, c := range d.Contests {
		if c.ObjectID == id {
			return c
		}
	}
	return nil
}

// SelectionByID returns the selection with the given id within the contest,
// or nil if absent.
func (c *ContestDescription) SelectionByID(id string) *SelectionDescription {
	for _, s := range c.Selections {
		if s.ObjectID == id {
			return s
		}
	}
	return nil
}

// SchnorrProof is a guardian's proof of knowledge of the secret key
// corresponding to one of its public coefficient commitments: commitment h,
// challenge c, response u, satisfying g^u = h * K^c (mod p).
type SchnorrProof struct {
	PublicKey  *BigInt `json:"public_key"`
	Commitment *BigInt `json:"commitment"`
	Challenge  *BigInt `json:"challenge"`
	Response   *BigInt `json:"response"`
}

// CoefficientValidationSet is one guardian's published key ceremony material:
// its ordered polynomial coefficient commitments K_{i,j} and a Schnorr proof
// for each.
type CoefficientValidationSet struct {
	OwnerID                string          `json:"owner_id"`
	CoefficientCommitments []*BigInt       `json:"coefficient_commitments"`
	CoefficientProofs      []*SchnorrProof `json:"coefficient_proofs"`
}

// ElGamalCiphertext is an ElGamal pair (pad, data) = (α, β) = (g^nonce,
// K^nonce * g^m).
type ElGamalCiphertext struct {
	Pad  *BigInt `json:"pad"`
	Data *BigInt `json:"data"`
}

// DisjunctiveProof is a zero-or-one disjunctive Chaum-Pedersen proof attached
// to a ballot selection's ciphertext, proving its plaintext is 0 or 1 without
// revealing which.
type DisjunctiveProof struct {
	ProofZeroPad       *BigInt `json:"proof_zero_pad"`
	ProofZeroData      *BigInt `json:"proof_zero_data"`
	ProofOnePad        *BigInt `json:"proof_one_pad"`
	ProofOneData       *BigInt `json:"proof_one_data"`
	ProofZeroChallenge *BigInt `json:"proof_zero_challenge"`
	ProofOneChallenge  *BigInt `json:"proof_one_challenge"`
	ProofZeroResponse  *BigInt `json:"proof_zero_response"`
	ProofOneResponse   *BigInt `json:"proof_one_response"`
	Challenge          *BigInt `json:"challenge"`
}

// BallotSelection is one encrypted selection on a cast or spoiled ballot.
type BallotSelection struct {
	ObjectID               string            `json:"object_id"`
	IsPlaceholderSelection bool              `json:"is_placeholder_selection"`
	Ciphertext             ElGamalCiphertext `json:"ciphertext"`
	Proof                  *DisjunctiveProof `json:"proof"`
}

// BallotContest is one contest's worth of encrypted selections on a ballot,
// along with the contest-total range proof binding the selections to
// VotesAllowed.
type BallotContest struct {
	ObjectID   string             `json:"object_id"`
	Selections []*BallotSelection `json:"ballot_selections"`
	Proof      *ConstantProof     `json:"proof"`
}

// ConstantProof is the Chaum-Pedersen range proof that a contest's summed
// selection ciphertexts encrypt exactly VotesAllowed.
type ConstantProof struct {
	Pad       *BigInt `json:"pad"`
	Data      *BigInt `json:"data"`
	Challenge *BigInt `json:"challenge"`
	Response  *BigInt `json:"response"`
	Constant  int     `json:"constant"`
}

// CiphertextBallot is one voter's encrypted ballot as submitted to the
// tallying device, in either CAST or SPOILED state.
type CiphertextBallot struct {
	ObjectID      string           `json:"object_id"`
	State         string           `json:"state"`
	PreviousHash  *BigInt          `json:"previous_hash"`
	TrackingHash  *BigInt          `json:"tracking_hash"`
	Timestamp     int64            `json:"timestamp"`
	Contests      []*BallotContest `json:"contests"`
}

const (
	BallotStateCast    = "CAST"
	BallotStateSpoiled = "SPOILED"
)

// Device is one tallying device that accepted ballots during the election.
type Device struct {
	DeviceID int64  `json:"device_id"`
	Location string `json:"location"`
}

// CiphertextTallyContest maps selection id to the homomorphically-summed
// ciphertext of all cast ballots' selections in one contest.
type CiphertextTallyContest map[string]*ElGamalCiphertext

// PublishedCiphertextTally maps contest id to its summed selection
// ciphertexts.
type PublishedCiphertextTally struct {
	Contests map[string]CiphertextTallyContest `json:"contests"`
}

// CPProof is a Chaum-Pedersen proof of correct partial decryption: a guardian
// (or, for a recovered share, a Lagrange-interpolated stand-in) proves that
// its published share M is the correct decryption factor for ciphertext
// (pad, data) without revealing its secret key.
type CPProof struct {
	Pad       *BigInt `json:"pad"`
	Data      *BigInt `json:"data"`
	Challenge *BigInt `json:"challenge"`
	Response  *BigInt `json:"response"`
}

// RecoveredPart is one available guardian l's contribution M_{i,l} toward
// reconstructing a missing guardian i's decryption share, along with l's
// public recovery key and its own Chaum-Pedersen proof.
type RecoveredPart struct {
	Share       *BigInt  `json:"share"`
	RecoveryKey *BigInt  `json:"recovery_public_key"`
	Proof       *CPProof `json:"proof"`
}

// TallyShare is one guardian's contribution toward decrypting a single
// selection's tally ciphertext. Exactly one of Proof (the guardian decrypted
// directly) or RecoveredParts (the guardian was absent and its share was
// reconstructed from a quorum of other guardians' recovery parts) is
// populated in a well-formed artifact; S7 enforces that exclusivity as a
// runtime invariant rather than a decode-time rejection, so a malformed
// artifact asserting both can still be loaded and reported as INVALID.
type TallyShare struct {
	GuardianID     string                    `json:"guardian_id"`
	Share          *BigInt                   `json:"share"`
	Proof          *CPProof                  `json:"proof"`
	RecoveredParts map[string]*RecoveredPart `json:"recovered_parts"`
}

// IsDirect reports whether this share was produced by the guardian itself.
func (s *TallyShare) IsDirect() bool {
	return s.Proof != nil
}

// IsRecovered reports whether this share was reconstructed from other
// guardians' recovery parts.
func (s *TallyShare) IsRecovered() bool {
	return len(s.RecoveredParts) > 0
}

// PlaintextTallySelection is one selection's decrypted tally: the summed
// ciphertext, its recovered plaintext message M, the decoded integer Tally,
// and the per-guardian shares that combined to decrypt it.
type PlaintextTallySelection struct {
	Message *ElGamalCiphertext    `json:"message"`
	Value   *BigInt               `json:"value"`
	Tally   int64                 `json:"tally"`
	Shares  map[string]*TallyShare `json:"shares"`
}

// PlaintextTallyContest maps selection id to its decrypted tally.
type PlaintextTallyContest struct {
	Selections map[string]*PlaintextTallySelection `json:"selections"`
}

// PlaintextTally is the fully decrypted election result: the contest tallies
// plus, for every spoiled ballot, the same per-contest decryption performed
// on that ballot alone.
type PlaintextTally struct {
	Contests       map[string]*PlaintextTallyContest            `json:"contests"`
	SpoiledBallots map[string]map[string]*PlaintextTallyContest `json:"spoiled_ballots"`
}
