package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func writeFixtureFiles(c *qt.C, dir string) {
	files := map[string]string{
		"constants.json":       `{"large_prime":"23","small_prime":"11","cofactor":"1","generator":"2"}`,
		"context.json":         `{"number_of_guardians":1,"quorum":1,"elgamal_public_key":"4","crypto_base_hash":"5","crypto_extended_base_hash":"6"}`,
		"description.json":     `{"contests":[{"object_id":"contest-1","votes_allowed":1,"ballot_selections":[{"object_id":"sel-1"}]}]}`,
		"encrypted_tally.json": `{"contests":{}}`,
		"tally.json":           `{"contests":{}}`,
	}
	for name, content := range files {
		c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), qt.IsNil)
	}
}

func TestLocalSourceLoad(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	writeFixtureFiles(c, dir)

	src := NewLocalSource(dir)
	bundle, err := src.Load(context.Background())
	c.Assert(err, qt.IsNil)

	c.Assert(bundle.Constants.LargePrime.String(), qt.Equals, "23")
	c.Assert(bundle.Constants.Generator.String(), qt.Equals, "2")
	c.Assert(bundle.Context.NumberOfGuardians, qt.Equals, 1)
	c.Assert(bundle.Description.Contests, qt.HasLen, 1)
	c.Assert(bundle.Description.Contests[0].ObjectID, qt.Equals, "contest-1")
	c.Assert(bundle.CastBallots, qt.HasLen, 0)
	c.Assert(bundle.Guardians, qt.HasLen, 0)
}

func TestLocalSourceLoadMissingFile(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	src := NewLocalSource(dir)
	_, err := src.Load(context.Background())
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestLocalSourceReadsBallotsAndGuardians(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	writeFixtureFiles(c, dir)

	c.Assert(os.MkdirAll(filepath.Join(dir, "encrypted_ballots"), 0o755), qt.IsNil)
	ballot := `{"object_id":"ballot-1","state":"CAST","contests":[]}`
	c.Assert(os.WriteFile(filepath.Join(dir, "encrypted_ballots", "ballot_1.json"), []byte(ballot), 0o644), qt.IsNil)

	c.Assert(os.MkdirAll(filepath.Join(dir, "coefficients"), 0o755), qt.IsNil)
	set := `{"owner_id":"g1","coefficient_commitments":["7"],"coefficient_proofs":[]}`
	c.Assert(os.WriteFile(filepath.Join(dir, "coefficients", "coefficient_validation_set_g1.json"), []byte(set), 0o644), qt.IsNil)

	src := NewLocalSource(dir)
	bundle, err := src.Load(context.Background())
	c.Assert(err, qt.IsNil)

	c.Assert(bundle.CastBallots, qt.HasLen, 1)
	c.Assert(bundle.CastBallots[0].ObjectID, qt.Equals, "ballot-1")
	c.Assert(bundle.Guardians, qt.HasLen, 1)
	c.Assert(bundle.Guardians[0].OwnerID, qt.Equals, "g1")
}
