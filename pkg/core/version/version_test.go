package version

import (
	"regexp"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Toolkit", Toolkit},
		{"Parser", Parser},
		{"Store", Store},
		{"Report", Report},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"parser component", "parser", Parser},
		{"store component", "store", Store},
		{"report component", "report", Report},
		{"unknown component", "unknown", Toolkit},
		{"empty component", "", Toolkit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComponentVersion(tt.component)
			if result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if Format() != "1.0" {
		t.Errorf("Format() = %q, want 1.0", Format())
	}
	if MaxSupportedFormat() != 1 {
		t.Errorf("MaxSupportedFormat() = %d, want 1", MaxSupportedFormat())
	}
	if want := "magres " + Toolkit + " (format v1.0, reads up to v1.x)"; String() != want {
		t.Errorf("String() = %q, want %q", String(), want)
	}
}
