// Package buildinfo derives the sr version string from the build
// metadata the Go toolchain embeds. Nothing is stamped with ldflags.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version reports the version shown by sr --version and carried in the
// telemetry payload. Installs from a tag report the tag; builds from a
// checkout report "dev-<short hash>", with "-dirty" appended when the
// tree had uncommitted changes, or plain "dev" when no VCS metadata
// was embedded. "unknown" means the build info block itself is missing.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return devVersion(info)
}

// devVersion builds the pseudo-version for untagged builds from the
// embedded VCS settings.
func devVersion(info *debug.BuildInfo) string {
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	// Git short-hash length.
	if len(revision) > 12 {
		revision = revision[:12]
	}

	if dirty {
		return fmt.Sprintf("dev-%s-dirty", revision)
	}
	return fmt.Sprintf("dev-%s", revision)
}
