// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a unique request id (RayID) per request, stored in the context and
//     echoed in the X-Ray-ID response header for log correlation.
//
// Both are registered globally by the start command. The swagger UI is mounted
// before auth so the documentation stays public.
package middleware
