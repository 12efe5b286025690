package adapter

import (
	"crypto/tls"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/kbukum/geohttp/logger"
)

// netModulePath is the pooling-layer dependency whose version is checked
// when a custom TLS context is bound.
const netModulePath = "golang.org/x/net"

// minSafeNetVersion is the oldest golang.org/x/net release that does not
// mutate a caller-supplied TLS config in place while configuring HTTP/2
// on the connection pool.
var minSafeNetVersion = [3]int{0, 17, 0}

// bindTLSContext threads a caller-supplied trust context into the pooled
// transport. One tls.Config covers both connection paths the pool may
// build: direct TLS and TLS tunneled through a CONNECT proxy.
//
// The context is cloned exactly once so the pooling layer's HTTP/2 setup
// mutates the copy, never the caller's value, and the caller's RootCAs
// are carried over untouched: no system CA bundle, CA directory, cert
// file or key file is ever added to a custom context, otherwise
// caller-supplied trust restrictions would be silently widened.
func (a *PooledAdapter) bindTLSContext(ctxCfg *tls.Config) {
	a.warnOnce.Do(func() { warnIfOldNetModule(a.log) })
	a.transport.TLSClientConfig = ctxCfg.Clone()
}

// warnIfOldNetModule emits a one-time warning per adapter instance when
// the build's x/net module predates the minimum safe version.
func warnIfOldNetModule(log *logger.Logger) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, dep := range bi.Deps {
		if dep.Path != netModulePath {
			continue
		}
		mod := dep
		if mod.Replace != nil {
			mod = mod.Replace
		}
		if versionLess(parseVersionTuple(mod.Version), minSafeNetVersion) {
			log.Warn("golang.org/x/net prior to v0.17.0 is known to mutate "+
				"a caller-supplied TLS config when configuring HTTP/2 on the "+
				"connection pool; please consider upgrading",
				logger.Fields("found", mod.Version))
		}
		return
	}
}

// parseVersionTuple parses "v1.2.3" into a numeric tuple. Components that
// fail to parse (pre-release suffixes, pseudo-versions) count as zero.
func parseVersionTuple(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var tuple [3]int
	for i, part := range strings.SplitN(v, ".", 3) {
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		tuple[i] = n
	}
	return tuple
}

func versionLess(a, b [3]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
