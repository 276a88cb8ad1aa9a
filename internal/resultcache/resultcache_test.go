package resultcache

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nickboucher/electionguard-verify/internal/verify"
)

func TestCachePutGetRoundTrip(t *testing.T) {
	c := qt.New(t)
	cache, err := Open(t.TempDir(), 8)
	c.Assert(err, qt.IsNil)
	defer cache.Close()

	report := &verify.Report{RunID: "run-1", Valid: true, Stages: []verify.StageReport{
		{Name: "S1 Election Parameters", Valid: true, Ran: true},
	}}
	cache.Put("key-1", report)

	got, ok := cache.Get("key-1")
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.RunID, qt.Equals, "run-1")
	c.Assert(got.Valid, qt.IsTrue)
	c.Assert(got.Stages, qt.HasLen, 1)
}

func TestCacheMiss(t *testing.T) {
	c := qt.New(t)
	cache, err := Open(t.TempDir(), 8)
	c.Assert(err, qt.IsNil)
	defer cache.Close()

	_, ok := cache.Get("missing")
	c.Assert(ok, qt.IsFalse)
}

func TestCacheFallsBackToPebbleAfterFrontEviction(t *testing.T) {
	c := qt.New(t)
	cache, err := Open(t.TempDir(), 1)
	c.Assert(err, qt.IsNil)
	defer cache.Close()

	cache.Put("key-1", &verify.Report{RunID: "run-1", Valid: true})
	cache.Put("key-2", &verify.Report{RunID: "run-2", Valid: false})

	got, ok := cache.Get("key-1")
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.RunID, qt.Equals, "run-1")
}
