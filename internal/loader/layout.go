// Package loader implements the Source abstraction that acquires and
// materializes an election artifact into an immutable verify.Bundle. Grounded
// on original_source/electionguard_verify/command_line.py's file-layout
// constants and glob-based discovery, and on
// vocdoni-davinci-node/cmd/circuit-compile/s3.go for the aws-sdk-go-v2 client
// construction style the S3 backend reuses.
package loader

// Layout names the files and subdirectories an artifact directory is
// expected to contain, with every name independently overridable the way
// command_line.py's flags override them.
type Layout struct {
	ContextFile        string
	DescriptionFile    string
	ConstantsFile      string
	EncryptedTallyFile string
	TallyFile          string

	DevicesDir    string
	DevicePrefix  string
	BallotsDir    string
	BallotPrefix  string
	SpoiledDir    string
	SpoiledPrefix string

	CoefficientsDir    string
	CoefficientPrefix  string
}

// DefaultLayout returns the layout produced by a standard ElectionGuard
// artifact export.
func DefaultLayout() Layout {
	return Layout{
		ContextFile:        "context.json",
		DescriptionFile:    "description.json",
		ConstantsFile:      "constants.json",
		EncryptedTallyFile: "encrypted_tally.json",
		TallyFile:          "tally.json",

		DevicesDir:   "devices",
		DevicePrefix: "device_",

		BallotsDir:   "encrypted_ballots",
		BallotPrefix: "ballot_",

		SpoiledDir:    "spoiled_ballots",
		SpoiledPrefix: "ballot_",

		CoefficientsDir:   "coefficients",
		CoefficientPrefix: "coefficient_validation_set_",
	}
}

const jsonExt = ".json"
