// Package buildinfo holds version metadata stamped in at link time via
// -ldflags, the same mechanism the teacher's release tooling uses.
package buildinfo

// Version and Commit default to "dev"/"none" for local builds; a release
// build overrides them with -ldflags "-X ...Version=... -X ...Commit=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
