// Package security builds TLS trust contexts for geohttp adapters.
//
// A TLSConfig describes certificate authorities, client certificates and
// protocol versions declaratively (file paths, flags); Build turns it into
// a *tls.Config that an adapter binds for its whole lifetime. Adapters
// never mutate a bound context.
package security
