// Package version provides build version information for geohttp.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/geohttp/version.Version=1.0.0"
package version
