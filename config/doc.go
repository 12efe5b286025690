// Package config loads process-level geohttp settings.
//
// The one genuinely process-wide decision this library exposes is which
// transport implementation is the default; that is plain configuration
// read at startup and passed into the adapter factory, never a mutable
// global. Settings come from an optional YAML file, an optional .env
// file, and GEOHTTP_* environment variables, in increasing precedence.
package config
