package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/nickboucher/electionguard-verify/internal/verify"
	"github.com/nickboucher/electionguard-verify/log"
)

// Manifest names the content id of every artifact file a CIDSource resolves.
// There is no directory listing: the manifest itself enumerates every
// collection member explicitly, since the verifier does not carry the full
// UnixFS directory-traversal stack.
type Manifest struct {
	Context        cid.Cid
	Description    cid.Cid
	Constants      cid.Cid
	EncryptedTally cid.Cid
	Tally          cid.Cid

	Devices      []cid.Cid
	Ballots      []cid.Cid
	Spoiled      []cid.Cid
	Coefficients []cid.Cid
}

// CIDSource fetches every artifact file from an IPFS gateway by content id,
// verifying each payload's multihash before handing it to the JSON layer,
// and caching verified payloads in a local goleveldb store keyed by CID so a
// repeat run never re-fetches over the network.
type CIDSource struct {
	Gateway  string
	Manifest Manifest

	cache *leveldb.DB
	http  *http.Client
}

// NewCIDSource returns a CIDSource reading from gateway (e.g.
// "https://ipfs.io/ipfs/") and caching verified payloads under cacheDir.
func NewCIDSource(gateway string, manifest Manifest, cacheDir string) (*CIDSource, error) {
	store, err := leveldb.OpenFile(cacheDir, nil)
	if err != nil {
		return nil, fmt.Errorf("opening CID cache at %s: %w", cacheDir, err)
	}
	return &CIDSource{
		Gateway: gateway, Manifest: manifest,
		cache: store, http: http.DefaultClient,
	}, nil
}

// Close releases the underlying cache handle.
func (s *CIDSource) Close() error {
	return s.cache.Close()
}

// Load resolves every manifest entry and decodes the result into a
// verify.Bundle.
func (s *CIDSource) Load(ctx context.Context) (*verify.Bundle, error) {
	contextBlob, err := s.fetch(ctx, s.Manifest.Context)
	if err != nil {
		return nil, fmt.Errorf("loading context: %w", err)
	}
	descriptionBlob, err := s.fetch(ctx, s.Manifest.Description)
	if err != nil {
		return nil, fmt.Errorf("loading description: %w", err)
	}
	constantsBlob, err := s.fetch(ctx, s.Manifest.Constants)
	if err != nil {
		return nil, fmt.Errorf("loading constants: %w", err)
	}
	encTallyBlob, err := s.fetch(ctx, s.Manifest.EncryptedTally)
	if err != nil {
		return nil, fmt.Errorf("loading encrypted tally: %w", err)
	}
	tallyBlob, err := s.fetch(ctx, s.Manifest.Tally)
	if err != nil {
		return nil, fmt.Errorf("loading plaintext tally: %w", err)
	}

	deviceBlobs, err := s.fetchAll(ctx, s.Manifest.Devices)
	if err != nil {
		return nil, fmt.Errorf("loading devices: %w", err)
	}
	ballotBlobs, err := s.fetchAll(ctx, s.Manifest.Ballots)
	if err != nil {
		return nil, fmt.Errorf("loading cast ballots: %w", err)
	}
	spoiledBlobs, err := s.fetchAll(ctx, s.Manifest.Spoiled)
	if err != nil {
		return nil, fmt.Errorf("loading spoiled ballots: %w", err)
	}
	coefficientBlobs, err := s.fetchAll(ctx, s.Manifest.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("loading coefficient validation sets: %w", err)
	}

	return buildBundle(contextBlob, descriptionBlob, constantsBlob, encTallyBlob, tallyBlob,
		deviceBlobs, ballotBlobs, spoiledBlobs, coefficientBlobs)
}

func (s *CIDSource) fetchAll(ctx context.Context, ids []cid.Cid) ([][]byte, error) {
	sorted := make([]cid.Cid, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	blobs := make([][]byte, 0, len(sorted))
	for _, id := range sorted {
		blob, err := s.fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

// fetch returns the verified payload for id, consulting and populating the
// local cache, and erroring out rather than returning any bytes whose
// recomputed multihash does not match id's.
func (s *CIDSource) fetch(ctx context.Context, id cid.Cid) ([]byte, error) {
	key := []byte(id.String())

	if cached, err := s.cache.Get(key, nil); err == nil {
		return cached, nil
	}

	url := s.Gateway + id.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: gateway returned %s", url, resp.Status)
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	if err := verifyMultihash(id, blob); err != nil {
		return nil, fmt.Errorf("content integrity check failed for %s: %w", id, err)
	}

	if err := s.cache.Put(key, blob, nil); err != nil {
		log.Warnw("failed to cache verified CID payload", "cid", id.String(), "error", err)
	}
	return blob, nil
}

// verifyMultihash recomputes id's multihash over payload and refuses to
// return an error-free result unless it matches exactly.
func verifyMultihash(id cid.Cid, payload []byte) error {
	prefix := id.Prefix()
	recomputed, err := multihash.Sum(payload, prefix.MhType, prefix.MhLength)
	if err != nil {
		return fmt.Errorf("recomputing multihash: %w", err)
	}
	if recomputed.String() != id.Hash().String() {
		return fmt.Errorf("multihash mismatch: payload does not match requested CID")
	}
	return nil
}
