// Package component defines lifecycle interfaces for managed resources.
//
// A geohttp adapter owns a connection pool that must be released
// explicitly; wrapping it in a Component gives applications a uniform
// Start/Stop/Health surface for it alongside their other infrastructure.
package component
