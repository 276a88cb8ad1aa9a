// Package indices implements the Indices service: the lookup tables a
// verification run builds once from its loaded artifacts and consults
// repeatedly while walking ballots and tally shares. Grounded on
// original_source/electionguard_verify/utils.py's Contests and Guardians
// classes, whose __getitem__ returns nil on a missing key rather than
// panicking so callers can Ensure the absence itself as a failed invariant.
package indices

import "github.com/nickboucher/electionguard-verify/internal/model"

// Indices holds the maps built once from borrowed references over the
// lifetime of one verification run. It is never mutated after New returns,
// so it is safe to share across the goroutines of a parallel run.
type Indices struct {
	contestsByID  map[string]*model.ContestDescription
	guardiansByID map[string]*model.CoefficientValidationSet
}

// New builds an Indices from a manifest's contests and the election's
// published guardian coefficient validation sets. Duplicate object ids keep
// the last entry seen, matching a plain dict build in the reference
// implementation; stageS6 separately Ensures that both id sets are in fact
// unique, so this last-one-wins resolution never silently masks a producer
// anomaly.
func New(description *model.Description, guardians []*model.CoefficientValidationSet) *Indices {
	idx := &Indices{
		contestsByID:  make(map[string]*model.ContestDescription, len(description.Contests)),
		guardiansByID: make(map[string]*model.CoefficientValidationSet, len(guardians)),
	}
	for _, c := range description.Contests {
		idx.contestsByID[c.ObjectID] = c
	}
	for _, g := range guardians {
		idx.guardiansByID[g.OwnerID] = g
	}
	return idx
}

// Contest returns the manifest contest with the given id, or nil if no such
// contest exists.
func (idx *Indices) Contest(id string) *model.ContestDescription {
	return idx.contestsByID[id]
}

// Guardian returns the coefficient validation set owned by the given
// guardian id, or nil if no such guardian exists.
func (idx *Indices) Guardian(id string) *model.CoefficientValidationSet {
	return idx.guardiansByID[id]
}

// GuardianIDs returns every known guardian id, in no particular order.
func (idx *Indices) GuardianIDs() []string {
	ids := make([]string, 0, len(idx.guardiansByID))
	for id := range idx.guardiansByID {
		ids = append(ids, id)
	}
	return ids
}

// NumGuardians returns the number of guardians indexed.
func (idx *Indices) NumGuardians() int {
	return len(idx.guardiansByID)
}

// ContestSelection returns the manifest selection with id selectionID within
// contest contestID, or nil if either the contest or the selection is
// absent.
func (idx *Indices) ContestSelection(contestID, selectionID string) *model.SelectionDescription {
	c := idx.Contest(contestID)
	if c == nil {
		return nil
	}
	return c.SelectionByID(selectionID)
}
