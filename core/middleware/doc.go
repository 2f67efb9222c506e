// Package middleware groups the HTTP middleware used by the host-manager
// server: ray ID assignment for request correlation (rayid) and API key
// authentication (auth).
package middleware
