package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// shortCommitLength is the number of revision characters shown.
const shortCommitLength = 7

// buildInfo describes the running leaksplit binary.
type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	Modified  bool
	GoVersion string
	Platform  string
}

// currentBuild resolves buildInfo once. Linker flags win over the module
// and VCS data embedded by the go command.
var currentBuild = sync.OnceValue(func() buildInfo {
	var settings map[string]string
	info := buildInfo{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		settings = make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
	}

	return resolveBuildInfo(info, settings)
})

// resolveBuildInfo fills fields left empty by the linker from VCS settings
// and applies the fallbacks.
func resolveBuildInfo(info buildInfo, settings map[string]string) buildInfo {
	if info.Version == "" {
		info.Version = "(devel)"
	}
	if info.Commit == "" {
		info.Commit = settings["vcs.revision"]
		info.Modified = settings["vcs.modified"] == "true"
	}
	if len(info.Commit) > shortCommitLength {
		info.Commit = info.Commit[:shortCommitLength]
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = settings["vcs.time"]
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// getVersion returns the version reported by --version.
func getVersion() string {
	return currentBuild().Version
}

// print writes the version report.
func (b buildInfo) print(w io.Writer) {
	rev := b.Commit
	if b.Modified {
		rev += "-dirty"
	}
	fmt.Fprintf(w, "leaksplit version %s\n", b.Version)
	fmt.Fprintf(w, "  commit: %s\n", rev)
	fmt.Fprintf(w, "  built:  %s\n", b.Date)
	fmt.Fprintf(w, "  go:     %s %s\n", b.GoVersion, b.Platform)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the leaksplit version, the commit and date it was built from, and the Go toolchain used.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			currentBuild().print(cmd.OutOrStdout())
		},
	}
}
