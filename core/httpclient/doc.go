// Package httpclient is the JSON-over-HTTP client shared by the source feed and the
// destination repository integrations.
//
// A Client is bound to a base URL and a fixed set of headers (API key, bearer token).
// DoJSON encodes the request body, decodes 2xx responses into the output value and
// turns every other status into an *HTTPError carrying the status code and any error
// payload the server returned.
//
// Retries are opt-in. When enabled, 429 and 5xx responses and transport failures are
// retried with exponential backoff, honouring Retry-After.
//
// # Usage
//
//	c := httpclient.New("https://pure.example.org/ws/api",
//	    httpclient.WithHeader("api-key", key),
//	    httpclient.WithTimeout(30*time.Second),
//	)
//	var out map[string]any
//	err := c.DoJSON(ctx, http.MethodGet, "/changes/2024-03-01", nil, &out)
package httpclient
