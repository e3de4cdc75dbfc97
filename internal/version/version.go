// Package version reports the build identity of the tabpad binary.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const (
	defaultModule  = "pkt.systems/tabpad"
	appName        = "tabpad"
	unknownVersion = "v0.0.0-unknown"
	dirtySuffix    = "+dirty"
)

// buildVersion is set via -ldflags "-X pkt.systems/tabpad/internal/version.buildVersion=...".
var buildVersion = ""

// Info describes the running binary.
type Info struct {
	Module   string
	Version  string
	Revision string
	Time     time.Time
	Dirty    bool
}

// Read collects build identity from the linker flag and the embedded build info.
func Read() Info {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(buildVersion, info)
}

func fromBuildInfo(linked string, info *debug.BuildInfo) Info {
	out := Info{Module: defaultModule}
	if info != nil {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			out.Module = path
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				out.Revision = setting.Value
			case "vcs.time":
				if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					out.Time = ts.UTC()
				}
			case "vcs.modified":
				out.Dirty = setting.Value == "true"
			}
		}
	}
	switch {
	case strings.TrimSpace(linked) != "":
		out.Version = strings.TrimSpace(linked)
	case info != nil && info.Main.Version != "" && info.Main.Version != "(devel)":
		out.Version = info.Main.Version
	case out.Revision != "" && !out.Time.IsZero():
		out.Version = out.pseudo()
	default:
		out.Version = unknownVersion
	}
	if strings.HasSuffix(out.Version, dirtySuffix) {
		out.Version = strings.TrimSuffix(out.Version, dirtySuffix)
		out.Dirty = true
	}
	return out
}

// pseudo builds a Go-style pseudo version from the VCS stamp.
func (i Info) pseudo() string {
	rev := i.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return "v0.0.0-" + i.Time.Format("20060102150405") + "-" + rev
}

// String returns the version with a dirty suffix when the tree was modified.
func (i Info) String() string {
	if i.Dirty {
		return i.Version + dirtySuffix
	}
	return i.Version
}

// Banner returns the application name with its version, e.g. "tabpad v1.2.3".
func Banner() string {
	return appName + " " + CurrentWithDirty()
}

// Current returns the version without the dirty suffix.
func Current() string {
	return Read().Version
}

// CurrentWithDirty returns the version including the dirty suffix when available.
func CurrentWithDirty() string {
	return Read().String()
}

// Module returns the module path from build info when available.
func Module() string {
	return Read().Module
}
