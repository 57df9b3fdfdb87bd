// Package version reports the build version stamped in at compile time
// via -ldflags "-X techstore/version.name=... -X techstore/version.commit=...".
package version

var name = "dev"
var commit = ""

// Name returns the human-readable version string.
func Name() string {
	return name
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}
