// Package inventory implements the host inventory: group memberships and
// per-host connection variables, stored as a single Ansible-style YAML
// document (inventory.yml) in a git-backed working directory.
//
// # Consistency rules
//
//   - A host exists iff it appears under all.hosts; names are unique, and
//     adding an existing host never overwrites it.
//   - Group membership is expressed purely by key presence with a null value
//     under all.children.<group>.hosts.
//   - Groups other than all/ungrouped are pruned eagerly the moment their
//     last member is removed.
//
// The store reconstructs the document from the working directory on every
// operation, applies exactly one mutation, and writes the whole document
// back. Convenience mutations report a variant outcome: domain refusals
// (duplicate host, unknown host) come back as skipped no-ops rather than
// errors, keeping callers' happy paths simple; persistence and sync failures
// are hard errors.
//
// # HTTP Endpoints
//
//   - POST   /inventory            : add one host or a list of hosts
//   - DELETE /inventory            : remove a list of hosts by name
//   - GET    /inventory            : the current inventory document
//   - PATCH  /inventory/{host}/vars: merge variables into a host
package inventory
