// Package models defines the typed shapes of the fixed host record sections
// (state, storage, system) and their validation.
//
// Validation runs in one of two modes: Full requires every field (used by
// replace-style updates), Partial only checks the fields that are present
// (used by merge-style updates). The store itself never validates; handlers
// validate payloads before they reach it.
package models
