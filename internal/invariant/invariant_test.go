package invariant

import (
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEnsureAndValidate(t *testing.T) {
	c := qt.New(t)
	set := New("test stage", "run-1")

	c.Assert(set.Ensure("a", true), qt.IsTrue)
	c.Assert(set.Ensure("b", false), qt.IsFalse)
	c.Assert(set.Validate(), qt.IsFalse)
	c.Assert(set.FailedLabels(), qt.DeepEquals, []string{"b"})
}

func TestEnsureAllPassing(t *testing.T) {
	c := qt.New(t)
	set := New("test stage", "run-1")

	set.Ensure("a", true)
	set.Ensure("b", true)
	c.Assert(set.Validate(), qt.IsTrue)
	c.Assert(set.FailedLabels(), qt.HasLen, 0)
}

func TestEnsureDuplicateLabelIsANDed(t *testing.T) {
	c := qt.New(t)
	set := New("test stage", "run-1")

	set.Ensure("x", true)
	set.Ensure("x", false)
	set.Ensure("x", true)
	c.Assert(set.FailedLabels(), qt.DeepEquals, []string{"x"})
}

func TestNewStoresRunID(t *testing.T) {
	c := qt.New(t)
	set := New("test stage", "run-42")

	c.Assert(set.RunID, qt.Equals, "run-42")
	set.Warn("a known producer deviation")
}

func TestEnsureConcurrentSafe(t *testing.T) {
	c := qt.New(t)
	set := New("concurrent stage", "run-1")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set.Ensure("shared", true)
		}(i)
	}
	wg.Wait()
	c.Assert(set.Validate(), qt.IsTrue)
}
