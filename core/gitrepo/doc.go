// Package gitrepo provides the adapter between the stores and their
// git-backed working directories.
//
// The Repository interface is deliberately narrow: pull, file read/write/
// remove/list, and a commit-and-push-if-dirty operation gated on worktree
// status. The stores never inspect diffs or history; the repository is
// treated as a durable append-only log entry point.
//
// # Implementations
//
//   - Git: the production implementation on go-git. Opens an existing
//     checkout or clones it on first start. Authenticates via a bearer token
//     (HTTPS) or SSH private key, falling back to go-git's defaults.
//     File writes are atomic (write-to-temp + rename).
//   - Memory: an in-memory stand-in for tests, with a faithful dirty gate
//     and injectable pull/write failures.
//
// # Usage
//
//	repo, err := gitrepo.Open(ctx, cfg.Hostvars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = repo.Pull(ctx)
package gitrepo
