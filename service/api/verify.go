package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nickboucher/electionguard-verify/internal/loader"
	"github.com/nickboucher/electionguard-verify/internal/verify"
)

const defaultGateway = "https://ipfs.io/ipfs/"

// verifySource is whatever the loader package can hand a materialized
// verify.Bundle from; satisfied by loader.LocalSource, loader.S3Source and
// loader.CIDSource.
type verifySource interface {
	Load(ctx context.Context) (*verify.Bundle, error)
}

// postVerify handles POST /verify: decode the artifact location from the
// request body, load it, run the eight verification stages, and return the
// resulting Report as JSON.
func (a *API) postVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}

	src, err := a.buildRequestSource(r.Context(), req)
	if err != nil {
		ErrUnsupportedSource.WithErr(err).Write(w)
		return
	}

	bundle, err := src.Load(r.Context())
	if err != nil {
		ErrLoadFailed.WithErr(err).Write(w)
		return
	}

	opts := verify.Options{Parallel: req.Parallel, CacheKey: verify.ContentKey(bundle)}
	if a.cache != nil {
		opts.Cache = a.cache
	}
	if a.store != nil {
		opts.Store = a.store
	}

	report := verify.Run(r.Context(), bundle, opts)
	if report.Cancelled {
		ErrVerificationCancelled.Write(w)
		return
	}

	httpWriteJSON(w, report)
}

// buildRequestSource picks the artifact source named by req: an S3 bucket and
// an IPFS manifest CID take precedence over a bare local directory, and it is
// an error to name more than one.
func (a *API) buildRequestSource(ctx context.Context, req VerifyRequest) (verifySource, error) {
	set := 0
	if req.S3 != nil {
		set++
	}
	if req.CID != nil {
		set++
	}
	if req.Directory != "" {
		set++
	}
	if set == 0 {
		return nil, fmt.Errorf("request names no artifact source")
	}
	if set > 1 {
		return nil, fmt.Errorf("request names more than one artifact source")
	}

	switch {
	case req.S3 != nil:
		return loader.NewS3Source(ctx, req.S3.Bucket, req.S3.Prefix, req.S3.Endpoint, req.S3.Region, req.S3.AccessKey, req.S3.SecretKey)

	case req.CID != nil:
		gateway := req.CID.Gateway
		if gateway == "" {
			gateway = defaultGateway
		}
		return loader.NewCIDSourceFromManifestCID(ctx, gateway, req.CID.ManifestCID, a.cacheDir+"/cid")

	default:
		return loader.NewLocalSource(req.Directory), nil
	}
}
