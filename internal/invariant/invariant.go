// Package invariant implements InvariantSet, the named collection of labelled
// boolean conditions every verification stage accumulates into before
// producing its pass/fail aggregate. It is grounded on
// original_source/electionguard_verify/utils.py's Invariants class, widened to
// be safe for concurrent callers so parallel stage fan-out can share one set.
package invariant

import (
	"sync"

	"github.com/nickboucher/electionguard-verify/log"
)

// Set tracks the truthiness of labelled conditions collectively titled Title.
// Duplicate labels are logically ANDed together, never appended as a list, so
// re-asserting the same invariant across a loop narrows rather than dilutes
// it.
type Set struct {
	Title string
	RunID string

	mu         sync.Mutex
	order      []string
	conditions map[string]bool
}

// New creates a new Set collectively labelled title, tagged with runID so
// every record it logs can be correlated back to one verification run.
func New(title, runID string) *Set {
	return &Set{Title: title, RunID: runID, conditions: make(map[string]bool)}
}

// Ensure tracks the truthiness of condition under label, ANDing it with any
// prior assertion of the same label. It returns condition unchanged so callers
// can gate further work on it (e.g. skip a modular exponentiation once its
// precondition already failed).
func (s *Set) Ensure(label string, condition bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.conditions[label]; ok {
		s.conditions[label] = prior && condition
	} else {
		s.conditions[label] = condition
		s.order = append(s.order, label)
	}
	return condition
}

// Validate returns whether every tracked condition holds, logging
// [VALID]/[INVALID] plus the list of failed labels. It is idempotent and has
// no effect beyond logging.
func (s *Set) Validate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := true
	failed := make([]string, 0)
	for _, label := range s.order {
		if !s.conditions[label] {
			valid = false
			failed = append(failed, label)
		}
	}

	kind := "VALID"
	if !valid {
		kind = "INVALID"
	}
	log.Monitor(kind+": "+s.Title, map[string]any{
		"kind":          kind,
		"title":         s.Title,
		"failed_labels": failed,
		"run_id":        s.RunID,
	})
	return valid
}

// FailedLabels returns the labels whose condition is currently false, in the
// order they were first asserted.
func (s *Set) FailedLabels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	failed := make([]string, 0)
	for _, label := range s.order {
		if !s.conditions[label] {
			failed = append(failed, label)
		}
	}
	return failed
}

// Warn emits a WARNING record for a known, non-failing producer deviation or
// skipped check, tagged with the same run id as s's own Validate records.
// Warnings never affect Validate.
func (s *Set) Warn(msg string) {
	log.Monitor("WARNING: "+msg, map[string]any{
		"kind":   "WARNING",
		"title":  msg,
		"run_id": s.RunID,
	})
	log.Warnf("[WARNING]: %s", msg)
}
