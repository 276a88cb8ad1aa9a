package api

// Route constants for the API endpoints, following
// vocdoni-davinci-node/api/routes.go's naming convention.
const (
	PingEndpoint   = "/ping"   // GET: health check
	VerifyEndpoint = "/verify" // POST: verify an election artifact
)
