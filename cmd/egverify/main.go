// Command egverify verifies a published ElectionGuard election artifact
// against the record's own cryptographic claims, either as a one-shot CLI
// run or as a long-lived HTTP verification service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nickboucher/electionguard-verify/config"
	"github.com/nickboucher/electionguard-verify/internal/reportstore"
	"github.com/nickboucher/electionguard-verify/internal/resultcache"
	"github.com/nickboucher/electionguard-verify/internal/verify"
	"github.com/nickboucher/electionguard-verify/log"
	"github.com/nickboucher/electionguard-verify/service/api"
)

// Exit codes: 0 the artifact verified, 1 it failed a stage, 2 the run was
// cancelled or could not be loaded at all.
const (
	exitValid     = 0
	exitInvalid   = 1
	exitCancelled = 2
)

func main() {
	args := os.Args[1:]
	runServe := false
	if len(args) > 0 && args[0] == "serve" {
		runServe = true
		args = args[1:]
	}

	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCancelled)
	}

	logLevel := cfg.Log.Level
	switch {
	case cfg.Log.Verbose:
		logLevel = log.LogLevelDebug
	case cfg.Log.NoWarn:
		logLevel = log.LogLevelError
	}
	log.Init(logLevel, cfg.Log.Output, nil)

	ctx := context.Background()

	cache, store, err := openAncillaryServices(ctx, cfg)
	if err != nil {
		log.Errorw(err, "failed to start ancillary services")
		os.Exit(exitCancelled)
	}

	if runServe {
		srv := api.New(cfg, cache, store)
		if err := srv.ListenAndServe(); err != nil {
			log.Errorw(err, "HTTP verification service exited")
			os.Exit(exitCancelled)
		}
		return
	}

	src, err := buildSource(ctx, cfg)
	if err != nil {
		log.Errorw(err, "failed to configure artifact source")
		os.Exit(exitCancelled)
	}

	bundle, err := src.Load(ctx)
	if err != nil {
		log.Errorw(err, "failed to load election artifact")
		os.Exit(exitCancelled)
	}

	opts := verify.Options{
		Parallel: cfg.Parallel,
		CacheKey: verify.ContentKey(bundle),
	}
	if cache != nil {
		opts.Cache = cache
	}
	if store != nil {
		opts.Store = store
	}
	report := verify.Run(ctx, bundle, opts)

	printReport(report)

	switch {
	case report.Cancelled:
		os.Exit(exitCancelled)
	case report.Valid:
		os.Exit(exitValid)
	default:
		os.Exit(exitInvalid)
	}
}

// openAncillaryServices opens the result cache and report store named by
// cfg, returning nil for either when its configuration leaves it disabled.
func openAncillaryServices(ctx context.Context, cfg *config.Config) (*resultcache.Cache, *reportstore.Store, error) {
	var cache *resultcache.Cache
	if cfg.Cache.Enabled {
		c, err := resultcache.Open(cfg.Cache.Dir, cfg.Cache.FrontSize)
		if err != nil {
			return nil, nil, fmt.Errorf("opening result cache: %w", err)
		}
		cache = c
	}

	var store *reportstore.Store
	if cfg.ReportStore.URI != "" {
		s, err := reportstore.Open(ctx, cfg.ReportStore.URI, cfg.ReportStore.Database, cfg.ReportStore.Collection)
		if err != nil {
			return nil, nil, fmt.Errorf("opening report store: %w", err)
		}
		store = s
	}

	return cache, store, nil
}

// printReport renders a human-readable summary of report to stdout, one line
// per stage.
func printReport(report *verify.Report) {
	fmt.Printf("run %s\n", report.RunID)
	for _, stage := range report.Stages {
		status := "VALID"
		if !stage.Valid {
			status = "INVALID"
		}
		fmt.Printf("  [%s] %s\n", status, stage.Name)
		for _, label := range stage.FailedLabels {
			fmt.Printf("    - %s\n", label)
		}
	}
	if report.Cancelled {
		fmt.Println("verification cancelled before completion")
		return
	}
	if report.Valid {
		fmt.Println("VALID")
	} else {
		fmt.Println("INVALID")
	}
}
