package model

import (
	"math/big"

	"github.com/nickboucher/electionguard-verify/internal/hashcompose"
)

// CryptoHash returns the manifest's canonical hash: the composed hash of the
// ordered list of its contests' own CryptoHash values. S1 recomputes this to
// check it against context.CryptoBaseHash's binding.
func (d *Description) CryptoHash(hc *hashcompose.Composer) *big.Int {
	elems := make([]any, 0, len(d.Contests))
	for _, c := range d.Contests {
		elems = append(elems, c.CryptoHash(hc))
	}
	return hc.HashElems(elems...)
}

// CryptoHash returns a contest's canonical hash over its object id, its vote
// allowance, and the ordered list of its selections' object ids.
func (c *ContestDescription) CryptoHash(hc *hashcompose.Composer) *big.Int {
	elems := make([]any, 0, len(c.Selections)+2)
	elems = append(elems, c.ObjectID, c.VotesAllowed)
	for _, s := range c.Selections {
		elems = append(elems, s.ObjectID)
	}
	return hc.HashElems(elems...)
}
