package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nickboucher/electionguard-verify/config"
)

func testAPI(t *testing.T) *API {
	cfg := &config.Config{
		Cache: config.CacheConfig{Dir: t.TempDir()},
		API:   config.APIConfig{Host: "127.0.0.1", Port: 0},
	}
	return New(cfg, nil, nil)
}

func writeMinimalArtifact(c *qt.C, dir string) {
	files := map[string]string{
		"constants.json":       `{"large_prime":"23","small_prime":"11","cofactor":"1","generator":"2"}`,
		"context.json":         `{"number_of_guardians":1,"quorum":1,"elgamal_public_key":"4","crypto_base_hash":"5","crypto_extended_base_hash":"6"}`,
		"description.json":     `{"contests":[]}`,
		"encrypted_tally.json": `{"contests":{}}`,
		"tally.json":           `{"contests":{}}`,
	}
	for name, content := range files {
		c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), qt.IsNil)
	}
}

func TestPing(t *testing.T) {
	c := qt.New(t)
	a := testAPI(t)

	req := httptest.NewRequest(http.MethodGet, PingEndpoint, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func TestPostVerifyMalformedBody(t *testing.T) {
	c := qt.New(t)
	a := testAPI(t)

	req := httptest.NewRequest(http.MethodPost, VerifyEndpoint, bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
	var body struct {
		Code int `json:"code"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &body), qt.IsNil)
	c.Assert(body.Code, qt.Equals, ErrMalformedBody.Code)
}

func TestPostVerifyNoSourceNamed(t *testing.T) {
	c := qt.New(t)
	a := testAPI(t)

	req := httptest.NewRequest(http.MethodPost, VerifyEndpoint, bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}

func TestPostVerifyLocalDirectory(t *testing.T) {
	c := qt.New(t)
	a := testAPI(t)
	dir := t.TempDir()
	writeMinimalArtifact(c, dir)

	body, err := json.Marshal(VerifyRequest{Directory: dir})
	c.Assert(err, qt.IsNil)

	req := httptest.NewRequest(http.MethodPost, VerifyEndpoint, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var report struct {
		RunID string `json:"run_id"`
		Valid bool   `json:"valid"`
	}
	c.Assert(json.Unmarshal(rec.Body.Bytes(), &report), qt.IsNil)
	c.Assert(report.RunID, qt.Not(qt.Equals), "")
	c.Assert(report.Valid, qt.IsFalse)
}
