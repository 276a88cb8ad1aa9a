package verify

import (
	"context"

	"github.com/google/uuid"

	"github.com/nickboucher/electionguard-verify/internal/bigmod"
	"github.com/nickboucher/electionguard-verify/internal/hashcompose"
	"github.com/nickboucher/electionguard-verify/internal/indices"
	"github.com/nickboucher/electionguard-verify/internal/invariant"
	"github.com/nickboucher/electionguard-verify/log"
)

// ResultCache is the subset of the result-cache service the orchestrator
// needs: look up a prior Report by content key, store a fresh one. A nil
// Cache field on Options disables caching entirely.
type ResultCache interface {
	Get(key string) (*Report, bool)
	Put(key string, r *Report)
}

// ReportStore persists a completed Report for later audit. A nil Store field
// on Options disables persistence entirely.
type ReportStore interface {
	Save(ctx context.Context, r *Report) error
}

// Options configures one orchestrator run.
type Options struct {
	Parallel bool
	Cache    ResultCache
	CacheKey string
	Store    ReportStore
}

// Run executes stages S1 through S8 in order against bundle, short-circuiting
// after the first stage whose InvariantSet fails to validate. It stamps a
// fresh run id, honors cache and report-store configuration, and treats
// context cancellation as the "cancelled" verdict.
func Run(ctx context.Context, b *Bundle, opts Options) *Report {
	if opts.Cache != nil && opts.CacheKey != "" {
		if cached, ok := opts.Cache.Get(opts.CacheKey); ok {
			hit := *cached
			hit.FromCache = true
			return &hit
		}
	}

	arith := bigmod.New(b.Constants.LargePrime.Int(), b.Constants.SmallPrime.Int())
	hc := hashcompose.New(b.Constants.SmallPrime.Int())
	idx := indices.New(b.Description, b.Guardians)

	runID := uuid.NewString()
	report := &Report{RunID: runID, Valid: true}

	type stageFn func() *invariant.Set
	stages := []stageFn{
		func() *invariant.Set { return stageS1(b, arith, hc, runID) },
		func() *invariant.Set { return stageS2(b, arith, hc, runID) },
		func() *invariant.Set { return stageS3(ctx, b, arith, hc, opts.Parallel, runID) },
		func() *invariant.Set { return stageS4(b, arith, idx, runID) },
		func() *invariant.Set { return stageS5(runID) },
		func() *invariant.Set { return stageS6(b, arith, hc, idx, runID) },
		func() *invariant.Set { return stageS7(b, arith, hc, runID) },
		func() *invariant.Set { return stageS8(b, arith, hc, idx, runID) },
	}

	for _, stage := range stages {
		if ctx.Err() != nil {
			report.Cancelled = true
			report.Valid = false
			break
		}

		set := stage()
		valid := set.Validate()
		report.Stages = append(report.Stages, StageReport{
			Name:         set.Title,
			Valid:        valid,
			FailedLabels: set.FailedLabels(),
			Ran:          true,
		})
		if !valid {
			report.Valid = false
			break
		}
	}

	if opts.Cache != nil && opts.CacheKey != "" && !report.Cancelled {
		opts.Cache.Put(opts.CacheKey, report)
	}
	if opts.Store != nil {
		if err := opts.Store.Save(ctx, report); err != nil {
			log.Errorw(err, "failed to persist verification report")
		}
	}

	return report
}
