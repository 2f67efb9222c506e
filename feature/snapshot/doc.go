// Package snapshot archives the repository working directories to
// S3-compatible object storage.
//
// Each snapshot is a gzipped tarball of one working directory (git metadata
// excluded), named <target>/<target>-<timestamp>.tar.gz. Snapshots are an
// operational safety net on top of the repositories' own history: they
// capture the working tree as the service sees it, including uncommitted
// state left behind by failed pushes.
//
// The feature is disabled by default and enabled via SNAPSHOT_ENABLED.
//
// # HTTP Endpoints
//
//   - POST   /snapshot : archive all working directories
//   - GET    /snapshot : list stored snapshots
//   - DELETE /snapshot : prune old snapshots (?keep=N per target)
package snapshot
