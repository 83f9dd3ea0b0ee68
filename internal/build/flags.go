// Package build carries build-time information injected via ldflags:
//
//	go build -ldflags "-X spectro/internal/build.version=0.2.0 \
//	                   -X spectro/internal/build.commit=$(git rev-parse --short HEAD) \
//	                   -X spectro/internal/build.time=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package build

// Populated by -ldflags; development builds fall back to "dev".
var (
	name    = "spectro"
	version string
	commit  string
	time    string
)

// Info is the resolved build information.
type Info struct {
	Name    string
	Version string
	Commit  string
	Time    string
}

// GetInfo returns the build information, substituting development
// placeholders for anything the linker did not set.
func GetInfo() Info {
	info := Info{
		Name:    name,
		Version: version,
		Commit:  commit,
		Time:    time,
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Time == "" {
		info.Time = "unknown"
	}
	return info
}
