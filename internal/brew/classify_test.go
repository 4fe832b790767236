package brew

import (
	"reflect"
	"testing"
)

func TestIdentifyPythonPackages(t *testing.T) {
	formulae := []*Formula{
		{
			Name:         "certbot",
			Versions:     Versions{Stable: "2.0.0"},
			Dependencies: []string{"openssl", "python@3.9"},
		},
		{
			Name:         "ffmpeg",
			Versions:     Versions{Stable: "6.0"},
			Dependencies: []string{"libass", "libvorbis"},
		},
		{
			Name:         "numpy",
			Versions:     Versions{Stable: "1.21.0"},
			Dependencies: []string{"python@3.9"},
		},
	}

	got := IdentifyPythonPackages(formulae)

	want := []*PythonPackage{
		{Name: "certbot", Version: "2.0.0", Dependencies: []string{"openssl", "python@3.9"}},
		{Name: "numpy", Version: "1.21.0", Dependencies: []string{"python@3.9"}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("IdentifyPythonPackages() = %+v, want %+v", got, want)
	}
}

func TestIdentifyPythonPackages_Empty(t *testing.T) {
	if got := IdentifyPythonPackages(nil); len(got) != 0 {
		t.Errorf("IdentifyPythonPackages(nil) = %+v, want empty", got)
	}
}

// TestIdentifyPythonPackages_PrefixOnly verifies that only dependencies
// starting with python@ count; a package named python or depending on
// "cpython" is not a match.
func TestIdentifyPythonPackages_PrefixOnly(t *testing.T) {
	formulae := []*Formula{
		{Name: "tool-a", Versions: Versions{Stable: "1.0"}, Dependencies: []string{"cpython"}},
		{Name: "tool-b", Versions: Versions{Stable: "1.0"}, Dependencies: []string{"python"}},
	}

	if got := IdentifyPythonPackages(formulae); len(got) != 0 {
		t.Errorf("IdentifyPythonPackages() = %+v, want empty", got)
	}
}

func TestExtractPythonVersions(t *testing.T) {
	tests := []struct {
		name     string
		packages []*PythonPackage
		want     []string
	}{
		{
			name: "first occurrence order with dedup",
			packages: []*PythonPackage{
				{Name: "certbot", Dependencies: []string{"python@3.9"}},
				{Name: "awscli", Dependencies: []string{"python@3.8", "python@3.9"}},
				{Name: "legacy-tool", Dependencies: []string{"python@3.7"}},
			},
			want: []string{"python@3.9", "python@3.8", "python@3.7"},
		},
		{
			name: "non-python dependencies ignored",
			packages: []*PythonPackage{
				{Name: "certbot", Dependencies: []string{"openssl", "python@3.9"}},
			},
			want: []string{"python@3.9"},
		},
		{
			name: "no python dependencies",
			packages: []*PythonPackage{
				{Name: "odd-one", Dependencies: []string{"openssl"}},
			},
			want: nil,
		},
		{
			name:     "empty input",
			packages: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPythonVersions(tt.packages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPythonVersions() = %v, want %v", got, tt.want)
			}
		})
	}
}
