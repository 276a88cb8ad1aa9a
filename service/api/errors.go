package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a typed API error: a stable numeric Code for clients to branch on,
// the HTTPStatus to send, and the wrapped Err describing what went wrong.
// Grounded on vocdoni-davinci-node/api/errors_definition.go's Error/HTTPstatus
// convention: codes are never renumbered or reused, only appended to.
type Error struct {
	Code       int   `json:"code"`
	HTTPStatus int   `json:"-"`
	Err        error `json:"-"`
}

func (e Error) Error() string {
	return e.Err.Error()
}

// WithErr returns a copy of e wrapping a more specific underlying error,
// keeping e's Code and HTTPStatus.
func (e Error) WithErr(err error) Error {
	e.Err = fmt.Errorf("%s: %w", e.Err.Error(), err)
	return e
}

// Write sends e as a JSON body with its HTTPStatus.
func (e Error) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus)
	body := struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Code: e.Code, Message: e.Err.Error()}
	_ = json.NewEncoder(w).Encode(body)
}

// Error codes in the 4xxxx range are the caller's fault; 5xxxx are ours.
// Codes are never renumbered or reused once published.
var (
	ErrMalformedBody     = Error{Code: 40001, HTTPStatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON request body")}
	ErrMissingArtifact   = Error{Code: 40002, HTTPStatus: http.StatusBadRequest, Err: fmt.Errorf("request names no artifact source")}
	ErrUnsupportedSource = Error{Code: 40003, HTTPStatus: http.StatusBadRequest, Err: fmt.Errorf("unsupported artifact source")}

	ErrLoadFailed             = Error{Code: 50001, HTTPStatus: http.StatusBadGateway, Err: fmt.Errorf("failed to load election artifact")}
	ErrMarshalingServerJSON   = Error{Code: 50002, HTTPStatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling server-side JSON failed")}
	ErrVerificationCancelled = Error{Code: 50003, HTTPStatus: http.StatusServiceUnavailable, Err: fmt.Errorf("verification run was cancelled")}
)
