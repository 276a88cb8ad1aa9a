// Package verify implements the eight-stage verification engine
// and its orchestrator. Grounded on
// original_source/electionguard_verify/verify.py for the overall per-stage
// shape and on vocdoni-davinci-node's crypto/elgamal/proof.go for the
// Chaum-Pedersen verification style this package generalizes to arbitrary
// big.Int moduli.
package verify

import "github.com/nickboucher/electionguard-verify/internal/model"

// Bundle is every artifact entity a verification run needs, already
// materialized by the loader layer into immutable, repeatedly-traversable
// slices and maps.
type Bundle struct {
	Description     *model.Description
	Context         *model.Context
	Constants       *model.Constants
	Devices         []*model.Device
	CastBallots     []*model.CiphertextBallot
	SpoiledBallots  []*model.CiphertextBallot
	CiphertextTally *model.PublishedCiphertextTally
	PlaintextTally  *model.PlaintextTally
	Guardians       []*model.CoefficientValidationSet
}
