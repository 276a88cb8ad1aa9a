// Package config loads the CLI configuration from flags, environment
// variables, and defaults, following
// vocdoni-davinci-node/cmd/davinci-sequencer/config.go's pflag+viper wiring.
package config

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "error"
	defaultLogOutput = "stderr"

	defaultS3Region = "us-east-1"

	defaultCacheDir      = ".egverify/cache"
	defaultCacheFrontLen = 256

	defaultAPIHost = "0.0.0.0"
	defaultAPIPort = 8080

	envPrefix = "EGVERIFY"
)

// LoaderConfig names the artifact-file layout overrides (directories,
// prefixes) and the source selection flags (S3, IPFS gateway+CID).
type LoaderConfig struct {
	Directory string `mapstructure:"directory"`

	ContextFile        string `mapstructure:"contextFile"`
	DescriptionFile    string `mapstructure:"descriptionFile"`
	ConstantsFile      string `mapstructure:"constantsFile"`
	EncryptedTallyFile string `mapstructure:"encryptedTallyFile"`
	TallyFile          string `mapstructure:"tallyFile"`

	DevicesDir    string `mapstructure:"devicesDir"`
	DevicePrefix  string `mapstructure:"devicePrefix"`
	BallotsDir    string `mapstructure:"ballotsDir"`
	BallotPrefix  string `mapstructure:"ballotPrefix"`
	SpoiledDir    string `mapstructure:"spoiledDir"`
	SpoiledPrefix string `mapstructure:"spoiledPrefix"`

	CoefficientsDir   string `mapstructure:"coefficientsDir"`
	CoefficientPrefix string `mapstructure:"coefficientPrefix"`

	S3Bucket    string `mapstructure:"s3Bucket"`
	S3Prefix    string `mapstructure:"s3Prefix"`
	S3Endpoint  string `mapstructure:"s3Endpoint"`
	S3Region    string `mapstructure:"s3Region"`
	S3AccessKey string `mapstructure:"s3AccessKey"`
	S3SecretKey string `mapstructure:"s3SecretKey"`

	CID     string `mapstructure:"cid"`
	Gateway string `mapstructure:"gateway"`
}

// CacheConfig configures the verification result cache.
type CacheConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Dir       string `mapstructure:"dir"`
	FrontSize int    `mapstructure:"frontSize"`
}

// ReportStoreConfig configures the optional MongoDB audit trail.
type ReportStoreConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Output  string `mapstructure:"output"`
	Verbose bool   `mapstructure:"verbose"`
	NoWarn  bool   `mapstructure:"noWarn"`
}

// APIConfig configures the optional HTTP verification service.
type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Config is the fully resolved configuration for one egverify invocation.
type Config struct {
	Loader      LoaderConfig      `mapstructure:"loader"`
	Cache       CacheConfig       `mapstructure:"cache"`
	ReportStore ReportStoreConfig `mapstructure:"reportStore"`
	Log         LogConfig         `mapstructure:"log"`
	API         APIConfig         `mapstructure:"api"`
	Parallel    bool              `mapstructure:"parallel"`
}

// Load parses CLI flags and environment variables (prefixed EGVERIFY_) into a
// Config, applying defaults matching a standard local artifact layout.
func Load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("loader.contextFile", "context.json")
	v.SetDefault("loader.descriptionFile", "description.json")
	v.SetDefault("loader.constantsFile", "constants.json")
	v.SetDefault("loader.encryptedTallyFile", "encrypted_tally.json")
	v.SetDefault("loader.tallyFile", "tally.json")
	v.SetDefault("loader.devicesDir", "devices")
	v.SetDefault("loader.devicePrefix", "device_")
	v.SetDefault("loader.ballotsDir", "encrypted_ballots")
	v.SetDefault("loader.ballotPrefix", "ballot_")
	v.SetDefault("loader.spoiledDir", "spoiled_ballots")
	v.SetDefault("loader.spoiledPrefix", "ballot_")
	v.SetDefault("loader.coefficientsDir", "coefficients")
	v.SetDefault("loader.coefficientPrefix", "coefficient_validation_set_")
	v.SetDefault("loader.s3Region", defaultS3Region)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", defaultCacheDir)
	v.SetDefault("cache.frontSize", defaultCacheFrontLen)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)
	v.SetDefault("api.host", defaultAPIHost)
	v.SetDefault("api.port", defaultAPIPort)

	flags := flag.NewFlagSet("egverify", flag.ContinueOnError)
	flags.StringP("loader.contextFile", "c", "", "override the context file name")
	flags.StringP("loader.descriptionFile", "d", "", "override the description (manifest) file name")
	flags.String("loader.constantsFile", "", "override the constants file name")
	flags.StringP("loader.encryptedTallyFile", "e", "", "override the encrypted tally file name")
	flags.StringP("loader.tallyFile", "t", "", "override the plaintext tally file name")
	flags.StringP("loader.devicesDir", "x", "", "override the devices subdirectory")
	flags.String("loader.devicePrefix", "", "override the device file prefix")
	flags.StringP("loader.ballotsDir", "b", "", "override the cast-ballots subdirectory")
	flags.String("loader.ballotPrefix", "", "override the cast-ballot file prefix")
	flags.StringP("loader.spoiledDir", "s", "", "override the spoiled-ballots subdirectory")
	flags.String("loader.spoiledPrefix", "", "override the spoiled-ballot file prefix")
	flags.StringP("loader.coefficientsDir", "f", "", "override the coefficients subdirectory")
	flags.String("loader.coefficientPrefix", "", "override the coefficient validation set file prefix")

	flags.String("loader.s3Bucket", "", "read the artifact from this S3 bucket instead of a local directory")
	flags.String("loader.s3Prefix", "", "key prefix within the S3 bucket")
	flags.String("loader.s3Endpoint", "", "custom S3-compatible endpoint")
	flags.String("loader.s3Region", defaultS3Region, "AWS region for the S3 client")
	flags.String("loader.s3AccessKey", "", "S3 access key")
	flags.String("loader.s3SecretKey", "", "S3 secret key")

	flags.String("loader.cid", "", "read the artifact manifest from this content id instead of a local directory")
	flags.String("loader.gateway", "https://ipfs.io/ipfs/", "IPFS gateway base URL used with --cid")

	flags.Bool("cache.enabled", true, "enable the verification result cache")
	flags.String("cache.dir", defaultCacheDir, "result cache directory")

	flags.String("reportStore.uri", "", "MongoDB URI; when set, persist every Report for audit")
	flags.String("reportStore.database", "egverify", "report store database name")
	flags.String("reportStore.collection", "reports", "report store collection name")

	flags.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log.output", defaultLogOutput, "log output (stdout, stderr or filepath)")
	flags.BoolP("log.verbose", "v", false, "raise log level to include [VALID] records per stage")
	flags.BoolP("log.noWarn", "n", false, "silence [WARNING] records")

	flags.String("api.host", defaultAPIHost, "HTTP service bind host")
	flags.IntP("api.port", "p", defaultAPIPort, "HTTP service bind port")

	flags.Bool("parallel", false, "fan out S3 selection checks across goroutines")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: egverify [directory] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEvery flag is also settable via an %s_ prefixed environment variable,\n", envPrefix)
		fmt.Fprintf(os.Stderr, "with dots replaced by underscores, e.g. %s_CACHE_DIR.\n", envPrefix)
	}

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Parallel = v.GetBool("parallel")
	cfg.Log.Verbose = v.GetBool("log.verbose")
	cfg.Log.NoWarn = v.GetBool("log.noWarn")

	if positional := flags.Args(); len(positional) > 0 {
		cfg.Loader.Directory = positional[0]
	}

	return cfg, nil
}
