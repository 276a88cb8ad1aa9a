package config

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := Load(nil)
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Cache.Enabled, qt.IsTrue)
	c.Assert(cfg.Cache.Dir, qt.Equals, defaultCacheDir)
	c.Assert(cfg.API.Host, qt.Equals, defaultAPIHost)
	c.Assert(cfg.API.Port, qt.Equals, defaultAPIPort)
	c.Assert(cfg.Log.Level, qt.Equals, defaultLogLevel)
	c.Assert(cfg.Parallel, qt.IsFalse)
	c.Assert(cfg.Loader.S3Region, qt.Equals, defaultS3Region)
	c.Assert(cfg.Loader.Directory, qt.Equals, "")
}

func TestLoadFlagsAndPositionalDirectory(t *testing.T) {
	c := qt.New(t)

	cfg, err := Load([]string{"--log.level=debug", "--parallel", "/tmp/artifact"})
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Log.Level, qt.Equals, "debug")
	c.Assert(cfg.Parallel, qt.IsTrue)
	c.Assert(cfg.Loader.Directory, qt.Equals, "/tmp/artifact")
}

func TestLoadEnvironmentOverride(t *testing.T) {
	c := qt.New(t)

	t.Setenv("EGVERIFY_CACHE_DIR", "/var/egverify-cache")
	t.Setenv("EGVERIFY_API_PORT", "9090")

	cfg, err := Load(nil)
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Cache.Dir, qt.Equals, "/var/egverify-cache")
	c.Assert(cfg.API.Port, qt.Equals, 9090)
}

func TestLoadInvalidFlagReturnsError(t *testing.T) {
	c := qt.New(t)

	_, err := Load([]string{"--not-a-real-flag"})
	c.Assert(err, qt.Not(qt.IsNil))
}
