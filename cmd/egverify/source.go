package main

import (
	"context"
	"fmt"

	"github.com/nickboucher/electionguard-verify/config"
	"github.com/nickboucher/electionguard-verify/internal/loader"
	"github.com/nickboucher/electionguard-verify/internal/verify"
)

// source is whatever can materialize an artifact into a verify.Bundle,
// satisfied by loader.LocalSource, loader.S3Source and loader.CIDSource.
type source interface {
	Load(ctx context.Context) (*verify.Bundle, error)
}

// buildSource picks the artifact source implied by cfg: an S3 bucket and an
// IPFS manifest CID both take precedence over the default local directory,
// and it is an error to set both.
func buildSource(ctx context.Context, cfg *config.Config) (source, error) {
	l := cfg.Loader

	if l.S3Bucket != "" && l.CID != "" {
		return nil, fmt.Errorf("both --loader.s3Bucket and --loader.cid were set; pick one artifact source")
	}

	switch {
	case l.S3Bucket != "":
		s3src, err := loader.NewS3Source(ctx, l.S3Bucket, l.S3Prefix, l.S3Endpoint, l.S3Region, l.S3AccessKey, l.S3SecretKey)
		if err != nil {
			return nil, fmt.Errorf("constructing S3 source: %w", err)
		}
		applyLayoutOverrides(&s3src.Layout, l)
		return s3src, nil

	case l.CID != "":
		cidSrc, err := loader.NewCIDSourceFromManifestCID(ctx, l.Gateway, l.CID, cfg.Cache.Dir+"/cid")
		if err != nil {
			return nil, fmt.Errorf("constructing CID source: %w", err)
		}
		return cidSrc, nil

	default:
		dir := l.Directory
		if dir == "" {
			dir = "."
		}
		localSrc := loader.NewLocalSource(dir)
		applyLayoutOverrides(&localSrc.Layout, l)
		return localSrc, nil
	}
}

// applyLayoutOverrides copies any non-empty file/directory/prefix override
// from the loader config onto layout, leaving the corresponding default in
// place where the flag was not set.
func applyLayoutOverrides(layout *loader.Layout, l config.LoaderConfig) {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{l.ContextFile, &layout.ContextFile},
		{l.DescriptionFile, &layout.DescriptionFile},
		{l.ConstantsFile, &layout.ConstantsFile},
		{l.EncryptedTallyFile, &layout.EncryptedTallyFile},
		{l.TallyFile, &layout.TallyFile},
		{l.DevicesDir, &layout.DevicesDir},
		{l.DevicePrefix, &layout.DevicePrefix},
		{l.BallotsDir, &layout.BallotsDir},
		{l.BallotPrefix, &layout.BallotPrefix},
		{l.SpoiledDir, &layout.SpoiledDir},
		{l.SpoiledPrefix, &layout.SpoiledPrefix},
		{l.CoefficientsDir, &layout.CoefficientsDir},
		{l.CoefficientPrefix, &layout.CoefficientPrefix},
	}
	for _, o := range overrides {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
}
