// Package middleware groups the Fiber middleware installed by the start command.
//
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's value when present.
//   - auth: rejects requests without the configured API key (header X-API-Key or
//     query api_key). An empty key leaves the API open.
//
// rayid is installed first so that rejected requests are still traceable.
package middleware
