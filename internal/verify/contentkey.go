package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// ContentKey derives a stable cache key for a Bundle from the election
// identifiers and artifact shape that uniquely determine a verification
// outcome, without re-hashing every ciphertext the loader already decoded.
// Two loads of the same unmodified artifact always produce the same key;
// any change to the base hashes, joint public key, guardian set, or ballot
// population changes it. Tallies and ciphertext contents are not part of the
// key.
func ContentKey(b *Bundle) string {
	h := sha256.New()

	writeBig := func(i interface{ String() string }) {
		if i == nil {
			return
		}
		h.Write([]byte(i.String()))
		h.Write([]byte{0})
	}

	writeBig(b.Context.CryptoExtendedBaseHash)
	writeBig(b.Context.CryptoBaseHash)
	writeBig(b.Context.JointPublicKey)

	ballotIDs := make([]string, 0, len(b.CastBallots)+len(b.SpoiledBallots))
	for _, ballot := range b.CastBallots {
		ballotIDs = append(ballotIDs, "cast:"+ballot.ObjectID)
	}
	for _, ballot := range b.SpoiledBallots {
		ballotIDs = append(ballotIDs, "spoiled:"+ballot.ObjectID)
	}
	sort.Strings(ballotIDs)
	for _, id := range ballotIDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}

	guardianIDs := make([]string, 0, len(b.Guardians))
	for _, g := range b.Guardians {
		guardianIDs = append(guardianIDs, g.OwnerID)
	}
	sort.Strings(guardianIDs)
	for _, id := range guardianIDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
