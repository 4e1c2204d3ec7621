// Package version provides build version information for restkit.
package version

import "fmt"

// Version is set at build time via
// -ldflags "-X github.com/kyazgan/restkit/version.Version=1.2.3".
var Version = "dev"

// UserAgent returns the default User-Agent string for outbound requests.
func UserAgent() string {
	return fmt.Sprintf("restkit/%s", Version)
}
