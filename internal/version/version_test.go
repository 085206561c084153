package version

import (
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestBanner(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"plain", "1.2.3", "", "", "lifeline 1.2.3"},
		{"suffix", "0.1.0-dev", "", "", "lifeline 0.1.0-dev"},
		{"commit is shortened", "1.2.3", "abc123def4567890", "", "lifeline 1.2.3 (abc123def456)"},
		{"build date", "1.2.3", "abc", "2024-01-15T10:30:00Z", "lifeline 1.2.3 (abc) built 2024-01-15T10:30:00Z"},
		{"non-semver", "nightly", "", "", "lifeline nightly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.date)
			if got := Banner(false); got != tt.want {
				t.Errorf("Banner(false) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBannerColored(t *testing.T) {
	withVersion(t, "1.2.3", "", "")
	got := Banner(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("no escape sequences in %q", got)
	}
	if strings.Contains(Banner(false), "\x1b[") {
		t.Error("uncolored banner has escape sequences")
	}
}
