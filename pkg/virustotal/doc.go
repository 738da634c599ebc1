// Package virustotal is a minimal client for the VirusTotal API v3 endpoints
// needed to export a graph: graphs/{id} and urls/{id}.
//
// # Usage
//
//	client := virustotal.NewClient()            // key from VIRUSTOTAL_API_KEY
//	g, err := client.GetGraph(ctx, "g1a2b3...")
//	u, err := client.GetFullURL(ctx, sha256)    // resolve a URL node
//
// Requests carry the API key in the x-apikey header. The key is checked when
// a request is made, not when the client is built, so callers can construct
// a client before validating their own input.
//
// # Errors
//
// Unsuccessful responses are returned as [errors.Error] values wrapping a
// [StatusError] that records the HTTP status:
//
//   - 401/403: UNAUTHORIZED
//   - 404: NOT_FOUND
//   - 429: RATE_LIMITED
//   - anything else: NETWORK_ERROR
//
// Bodies without the data.attributes envelope yield MALFORMED_RESPONSE.
//
// # Quota
//
// By default the client makes one attempt per object, without throttling or
// caching. [WithRateLimit] spaces requests to fit the public API quota
// (4 requests per minute), [WithRetries] retries transport errors and 5xx
// responses, and [WithCache] stores URL objects between runs.
//
// [errors.Error]: github.com/matzehuels/vtmaltego/pkg/errors.Error
package virustotal
