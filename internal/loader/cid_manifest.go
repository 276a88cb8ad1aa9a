package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ipfs/go-cid"
)

// manifestWire is the JSON shape a manifest CID's payload decodes to: the
// same fields as Manifest, but as CID strings rather than parsed cid.Cid
// values.
type manifestWire struct {
	Context        string   `json:"context"`
	Description    string   `json:"description"`
	Constants      string   `json:"constants"`
	EncryptedTally string   `json:"encrypted_tally"`
	Tally          string   `json:"tally"`
	Devices        []string `json:"devices"`
	Ballots        []string `json:"ballots"`
	Spoiled        []string `json:"spoiled"`
	Coefficients   []string `json:"coefficients"`
}

// NewCIDSourceFromManifestCID fetches the manifest document named by
// manifestCID from gateway, verifies its own multihash, decodes it into a
// Manifest, and returns a ready CIDSource caching verified payloads under
// cacheDir.
func NewCIDSourceFromManifestCID(ctx context.Context, gateway, manifestCID, cacheDir string) (*CIDSource, error) {
	id, err := cid.Decode(manifestCID)
	if err != nil {
		return nil, fmt.Errorf("decoding manifest cid %q: %w", manifestCID, err)
	}

	url := gateway + id.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching manifest %s: gateway returned %s", url, resp.Status)
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", url, err)
	}
	if err := verifyMultihash(id, blob); err != nil {
		return nil, fmt.Errorf("content integrity check failed for manifest %s: %w", id, err)
	}

	var wire manifestWire
	if err := json.Unmarshal(blob, &wire); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", id, err)
	}

	manifest, err := wire.decode()
	if err != nil {
		return nil, fmt.Errorf("decoding manifest %s entries: %w", id, err)
	}

	return NewCIDSource(gateway, manifest, cacheDir)
}

func (w manifestWire) decode() (Manifest, error) {
	var m Manifest
	var err error
	if m.Context, err = cid.Decode(w.Context); err != nil {
		return m, fmt.Errorf("context: %w", err)
	}
	if m.Description, err = cid.Decode(w.Description); err != nil {
		return m, fmt.Errorf("description: %w", err)
	}
	if m.Constants, err = cid.Decode(w.Constants); err != nil {
		return m, fmt.Errorf("constants: %w", err)
	}
	if m.EncryptedTally, err = cid.Decode(w.EncryptedTally); err != nil {
		return m, fmt.Errorf("encrypted_tally: %w", err)
	}
	if m.Tally, err = cid.Decode(w.Tally); err != nil {
		return m, fmt.Errorf("tally: %w", err)
	}
	if m.Devices, err = decodeAll(w.Devices); err != nil {
		return m, fmt.Errorf("devices: %w", err)
	}
	if m.Ballots, err = decodeAll(w.Ballots); err != nil {
		return m, fmt.Errorf("ballots: %w", err)
	}
	if m.Spoiled, err = decodeAll(w.Spoiled); err != nil {
		return m, fmt.Errorf("spoiled: %w", err)
	}
	if m.Coefficients, err = decodeAll(w.Coefficients); err != nil {
		return m, fmt.Errorf("coefficients: %w", err)
	}
	return m, nil
}

func decodeAll(raw []string) ([]cid.Cid, error) {
	ids := make([]cid.Cid, 0, len(raw))
	for _, s := range raw {
		id, err := cid.Decode(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
