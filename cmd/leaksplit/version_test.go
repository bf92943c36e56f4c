package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	if v := getVersion(); v == "" {
		t.Error("getVersion() returned empty string")
	}
}

func TestResolveBuildInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		info     buildInfo
		settings map[string]string
		want     buildInfo
	}{
		{
			name: "fallbacks without build data",
			want: buildInfo{Version: "(devel)", Commit: "unknown", Date: "unknown"},
		},
		{
			name: "vcs settings fill empty fields",
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2024-05-06T07:08:09Z",
				"vcs.modified": "true",
			},
			want: buildInfo{Version: "(devel)", Commit: "0123456", Date: "2024-05-06T07:08:09Z", Modified: true},
		},
		{
			name: "linker values win",
			info: buildInfo{Version: "v1.2.3", Commit: "abcdef0123", Date: "2025-01-01"},
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2024-05-06T07:08:09Z",
				"vcs.modified": "true",
			},
			want: buildInfo{Version: "v1.2.3", Commit: "abcdef0", Date: "2025-01-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveBuildInfo(tt.info, tt.settings); got != tt.want {
				t.Errorf("resolveBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildInfoPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buildInfo{
		Version:   "v1.2.3",
		Commit:    "abcdef0",
		Date:      "2025-01-01",
		Modified:  true,
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
	}.print(&buf)

	want := "leaksplit version v1.2.3\n" +
		"  commit: abcdef0-dirty\n" +
		"  built:  2025-01-01\n" +
		"  go:     go1.25.0 linux/amd64\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("command has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd := NewVersionCmd(); cmd.Use != "version" {
			t.Errorf("expected Use to be 'version', got %q", cmd.Use)
		}
	})

	t.Run("command outputs version info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"leaksplit version", "commit:", "built:", "go:"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got %q", want, output)
			}
		}
	})

	t.Run("runs as a subcommand of root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"version"})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "leaksplit version") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}
