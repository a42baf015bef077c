// Package buildinfo reports what the running binary was built from.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

type Info struct {
	Version  string
	Revision string
	Modified bool
	Tags     string
}

func read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return Info{Version: "dev"}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{Version: info.Main.Version}
	if out.Version == "" || out.Version == "(devel)" {
		out.Version = "dev"
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "-tags":
			out.Tags = setting.Value
		case "vcs.revision":
			out.Revision = setting.Value
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	return out
}

// String renders the version, then the short revision and build tags when
// known, e.g. "dev (1a2b3c4d-dirty, tags: nosyntaxhighlight)".
func (i Info) String() string {
	var extra []string
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		if i.Modified {
			rev += "-dirty"
		}
		extra = append(extra, rev)
	}
	if i.Tags != "" {
		extra = append(extra, "tags: "+i.Tags)
	}
	if len(extra) == 0 {
		return i.Version
	}
	return i.Version + " (" + strings.Join(extra, ", ") + ")"
}

// Version returns the module version or "dev" when unset.
func Version() string {
	return read().Version
}

// VersionWithTags returns the version with revision and tags if present.
func VersionWithTags() string {
	return read().String()
}
