package api

import (
	"encoding/json"
	"net/http"

	"github.com/nickboucher/electionguard-verify/log"
)

// httpWriteJSON writes data as a JSON response body with status 200.
func httpWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSON.WithErr(err).Write(w)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(jdata); err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
}

// httpWriteOK writes an empty 200 response, used by the health check.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}
