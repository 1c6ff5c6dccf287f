// Package version provides information about the build version of the service.
package version

import (
	"runtime"
	"runtime/debug"
	"time"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Service is the binary name reported by /meta/version and the CLI
const Service = "factify-api"

// Set via -ldflags "-X 'github.com/habibaehabb05/Factify/internal/core/version.version=v0.1.0'
// -X '...version.commit=abcd' -X '...version.date=2025-11-02'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// started is captured at process start for uptime reporting
var started = time.Now()

// readBuildInfo is a seam over debug.ReadBuildInfo
var readBuildInfo = debug.ReadBuildInfo

// Info returns the build information. ldflags win; otherwise the VCS stamp the
// go tool embeds is used when present
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "none":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "unknown":
				bi.Date = s.Value
			}
		}
	}
	return bi
}

// Uptime is the time since the process started
func Uptime() time.Duration { return time.Since(started) }
