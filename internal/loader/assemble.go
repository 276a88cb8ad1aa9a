package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nickboucher/electionguard-verify/internal/model"
	"github.com/nickboucher/electionguard-verify/internal/verify"
)

// fetcher is the minimal byte-acquisition contract every directory/prefix
// style Source backend implements; assemble is the shared decoding logic
// built once on top of it so LocalSource and S3Source differ only in how
// bytes are fetched, never in how they are interpreted. CIDSource has no
// natural notion of a directory listing and instead calls buildBundle
// directly once it has resolved every root.
type fetcher interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	ReadDir(ctx context.Context, dir, prefix string) ([][]byte, error)
}

func assemble(ctx context.Context, f fetcher, layout Layout) (*verify.Bundle, error) {
	constantsBlob, err := f.ReadFile(ctx, layout.ConstantsFile)
	if err != nil {
		return nil, fmt.Errorf("loading constants: %w", err)
	}
	contextBlob, err := f.ReadFile(ctx, layout.ContextFile)
	if err != nil {
		return nil, fmt.Errorf("loading context: %w", err)
	}
	descriptionBlob, err := f.ReadFile(ctx, layout.DescriptionFile)
	if err != nil {
		return nil, fmt.Errorf("loading description: %w", err)
	}
	encTallyBlob, err := f.ReadFile(ctx, layout.EncryptedTallyFile)
	if err != nil {
		return nil, fmt.Errorf("loading encrypted tally: %w", err)
	}
	tallyBlob, err := f.ReadFile(ctx, layout.TallyFile)
	if err != nil {
		return nil, fmt.Errorf("loading plaintext tally: %w", err)
	}

	deviceBlobs, err := f.ReadDir(ctx, layout.DevicesDir, layout.DevicePrefix)
	if err != nil {
		return nil, fmt.Errorf("loading devices: %w", err)
	}
	ballotBlobs, err := f.ReadDir(ctx, layout.BallotsDir, layout.BallotPrefix)
	if err != nil {
		return nil, fmt.Errorf("loading cast ballots: %w", err)
	}
	spoiledBlobs, err := f.ReadDir(ctx, layout.SpoiledDir, layout.SpoiledPrefix)
	if err != nil {
		return nil, fmt.Errorf("loading spoiled ballots: %w", err)
	}
	coefficientBlobs, err := f.ReadDir(ctx, layout.CoefficientsDir, layout.CoefficientPrefix)
	if err != nil {
		return nil, fmt.Errorf("loading coefficient validation sets: %w", err)
	}

	return buildBundle(contextBlob, descriptionBlob, constantsBlob, encTallyBlob, tallyBlob,
		deviceBlobs, ballotBlobs, spoiledBlobs, coefficientBlobs)
}

// buildBundle decodes already-fetched JSON blobs into a verify.Bundle. It is
// shared by every Source backend, including CIDSource, which resolves its
// roots through content-addressed fetches that have no directory/prefix
// shape to hand to the fetcher interface above.
func buildBundle(
	contextBlob, descriptionBlob, constantsBlob, encTallyBlob, tallyBlob []byte,
	deviceBlobs, ballotBlobs, spoiledBlobs, coefficientBlobs [][]byte,
) (*verify.Bundle, error) {
	b := &verify.Bundle{
		Constants:       &model.Constants{},
		Context:         &model.Context{},
		Description:     &model.Description{},
		CiphertextTally: &model.PublishedCiphertextTally{},
		PlaintextTally:  &model.PlaintextTally{},
	}

	if err := json.Unmarshal(constantsBlob, b.Constants); err != nil {
		return nil, fmt.Errorf("decoding constants: %w", err)
	}
	if err := json.Unmarshal(contextBlob, b.Context); err != nil {
		return nil, fmt.Errorf("decoding context: %w", err)
	}
	if err := json.Unmarshal(descriptionBlob, b.Description); err != nil {
		return nil, fmt.Errorf("decoding description: %w", err)
	}
	if err := json.Unmarshal(encTallyBlob, b.CiphertextTally); err != nil {
		return nil, fmt.Errorf("decoding encrypted tally: %w", err)
	}
	if err := json.Unmarshal(tallyBlob, b.PlaintextTally); err != nil {
		return nil, fmt.Errorf("decoding plaintext tally: %w", err)
	}

	for _, blob := range deviceBlobs {
		var d model.Device
		if err := json.Unmarshal(blob, &d); err != nil {
			return nil, fmt.Errorf("decoding device: %w", err)
		}
		b.Devices = append(b.Devices, &d)
	}
	for _, blob := range ballotBlobs {
		var ballot model.CiphertextBallot
		if err := json.Unmarshal(blob, &ballot); err != nil {
			return nil, fmt.Errorf("decoding cast ballot: %w", err)
		}
		b.CastBallots = append(b.CastBallots, &ballot)
	}
	for _, blob := range spoiledBlobs {
		var ballot model.CiphertextBallot
		if err := json.Unmarshal(blob, &ballot); err != nil {
			return nil, fmt.Errorf("decoding spoiled ballot: %w", err)
		}
		b.SpoiledBallots = append(b.SpoiledBallots, &ballot)
	}
	for _, blob := range coefficientBlobs {
		var set model.CoefficientValidationSet
		if err := json.Unmarshal(blob, &set); err != nil {
			return nil, fmt.Errorf("decoding coefficient validation set: %w", err)
		}
		b.Guardians = append(b.Guardians, &set)
	}

	return b, nil
}
