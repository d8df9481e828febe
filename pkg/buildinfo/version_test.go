package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/matzehuels/inflate", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "unstamped",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			want: Info{Version: "v0.3.1", Commit: "abc123", Date: "2025-01-02T03:04:05Z"},
		},
		{
			name: "stamped wins",
			in:   Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
			want: Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fillFrom(tt.in, bi); got != tt.want {
				t.Errorf("fillFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFillFromDevelBuild(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := fillFrom(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi)
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", tmpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q, want commit line", String())
	}
}
