package indices

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nickboucher/electionguard-verify/internal/model"
)

func testDescription() *model.Description {
	return &model.Description{
		Contests: []*model.ContestDescription{
			{
				ObjectID:     "contest-1",
				VotesAllowed: 1,
				Selections: []*model.SelectionDescription{
					{ObjectID: "sel-1"},
					{ObjectID: "sel-2"},
				},
			},
		},
	}
}

func TestIndicesContestAndSelection(t *testing.T) {
	c := qt.New(t)
	idx := New(testDescription(), nil)

	cd := idx.Contest("contest-1")
	c.Assert(cd, qt.Not(qt.IsNil))
	c.Assert(cd.VotesAllowed, qt.Equals, 1)

	c.Assert(idx.Contest("missing"), qt.IsNil)

	sel := idx.ContestSelection("contest-1", "sel-2")
	c.Assert(sel, qt.Not(qt.IsNil))
	c.Assert(sel.ObjectID, qt.Equals, "sel-2")

	c.Assert(idx.ContestSelection("missing", "sel-2"), qt.IsNil)
	c.Assert(idx.ContestSelection("contest-1", "missing"), qt.IsNil)
}

func TestIndicesGuardians(t *testing.T) {
	c := qt.New(t)
	guardians := []*model.CoefficientValidationSet{
		{OwnerID: "g1"},
		{OwnerID: "g2"},
	}
	idx := New(testDescription(), guardians)

	c.Assert(idx.NumGuardians(), qt.Equals, 2)
	c.Assert(idx.Guardian("g1"), qt.Not(qt.IsNil))
	c.Assert(idx.Guardian("missing"), qt.IsNil)
	c.Assert(idx.GuardianIDs(), qt.HasLen, 2)
}
