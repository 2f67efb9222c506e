// Package hostvars implements the host record store: per-host YAML documents
// in a git-backed working directory, one file per host, with named sections
// (system, state, storage) plus free-form keys.
//
// Every mutation follows the same cycle: pull the latest repository state,
// load all records, apply exactly one update through the merge engine,
// rewrite the full record set, and commit-and-push if the working tree is
// dirty. No record state is cached between operations; freshness is bought
// with a full reload per request.
//
// # HTTP Endpoints
//
//   - POST   /hostvars        : deep-merge free-form updates into records
//   - GET    /hostvars        : all records
//   - GET    /hostvars/{host} : one record
//   - POST   /state           : replace the state section (full validation)
//   - GET    /state/{host}
//   - POST   /storage         : replace the storage section (full validation)
//   - PUT    /storage         : deep-merge into storage (partial validation)
//   - GET    /storage/{host}
//   - POST   /system          : replace the system section (full validation)
//   - GET    /system/{host}
//   - POST   /hosts           : create a record (all sections, one commit)
//   - DELETE /hosts/{host}    : delete a record
package hostvars
