package model_test

import (
	"encoding/json"
	"testing"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

func TestPackage_IsCoreFamily(t *testing.T) {
	tests := []struct {
		name     string
		pkg      model.Package
		expected bool
	}{
		{
			name:     "Core package",
			pkg:      model.Package{Name: "drupal/core"},
			expected: true,
		},
		{
			name:     "Core recommended",
			pkg:      model.Package{Name: "drupal/core-recommended"},
			expected: true,
		},
		{
			name:     "Core scaffold",
			pkg:      model.Package{Name: "drupal/core-composer-scaffold"},
			expected: true,
		},
		{
			name:     "Contributed module",
			pkg:      model.Package{Name: "drupal/token"},
			expected: false,
		},
		{
			name:     "Module with core-ish name",
			pkg:      model.Package{Name: "drupal/coredump"},
			expected: false,
		},
		{
			name:     "Non-drupal vendor",
			pkg:      model.Package{Name: "symfony/core-bundle"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.IsCoreFamily(); got != tt.expected {
				t.Errorf("IsCoreFamily() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPackage_IsDevSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		expected bool
	}{
		{name: "Branch snapshot", latest: "dev-main", expected: true},
		{name: "Legacy branch snapshot", latest: "dev-1.x", expected: true},
		{name: "Tagged release", latest: "1.13.0", expected: false},
		{name: "Suffix only", latest: "1.0.0-dev", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := model.Package{Latest: tt.latest}
			if got := pkg.IsDevSnapshot(); got != tt.expected {
				t.Errorf("IsDevSnapshot() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPackage_ProjectURL(t *testing.T) {
	tests := []struct {
		name     string
		pkg      model.Package
		expected string
	}{
		{
			name:     "Homepage wins",
			pkg:      model.Package{Name: "drupal/token", Homepage: "https://www.drupal.org/project/token"},
			expected: "https://www.drupal.org/project/token",
		},
		{
			name:     "Drupal project fallback",
			pkg:      model.Package{Name: "drupal/pathauto"},
			expected: "https://www.drupal.org/project/pathauto",
		},
		{
			name:     "Packagist fallback",
			pkg:      model.Package{Name: "symfony/console"},
			expected: "https://packagist.org/packages/symfony/console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.ProjectURL(); got != tt.expected {
				t.Errorf("ProjectURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPackage_ReleaseURL(t *testing.T) {
	tests := []struct {
		name     string
		pkg      model.Package
		expected string
	}{
		{
			name:     "Drupal release page",
			pkg:      model.Package{Name: "drupal/pathauto", Latest: "1.12.0"},
			expected: "https://www.drupal.org/project/pathauto/releases/1.12.0",
		},
		{
			name:     "Packagist version anchor",
			pkg:      model.Package{Name: "symfony/console", Latest: "6.4.1"},
			expected: "https://packagist.org/packages/symfony/console#6.4.1",
		},
		{
			name:     "Dev snapshot has no release page",
			pkg:      model.Package{Name: "drupal/custom", Latest: "dev-main"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pkg.ReleaseURL(); got != tt.expected {
				t.Errorf("ReleaseURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAbandoned_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected model.Abandoned
		wantErr  bool
	}{
		{
			name:     "Not abandoned",
			json:     `{"name":"drupal/token","abandoned":false}`,
			expected: model.Abandoned{},
		},
		{
			name:     "Abandoned without replacement",
			json:     `{"name":"drupal/token","abandoned":true}`,
			expected: model.Abandoned{Flag: true},
		},
		{
			name:     "Abandoned with replacement",
			json:     `{"name":"drupal/rdf","abandoned":"drupal/rdf_tools"}`,
			expected: model.Abandoned{Flag: true, Replacement: "drupal/rdf_tools"},
		},
		{
			name:     "Field omitted",
			json:     `{"name":"drupal/token"}`,
			expected: model.Abandoned{},
		},
		{
			name:    "Unexpected shape",
			json:    `{"name":"drupal/token","abandoned":42}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pkg model.Package
			err := json.Unmarshal([]byte(tt.json), &pkg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && pkg.Abandoned != tt.expected {
				t.Errorf("Abandoned = %+v, want %+v", pkg.Abandoned, tt.expected)
			}
		})
	}
}

func TestAbandoned_String(t *testing.T) {
	tests := []struct {
		name      string
		abandoned model.Abandoned
		expected  string
	}{
		{name: "Active", abandoned: model.Abandoned{}, expected: "no"},
		{name: "Abandoned", abandoned: model.Abandoned{Flag: true}, expected: "yes"},
		{
			name:      "Abandoned with replacement",
			abandoned: model.Abandoned{Flag: true, Replacement: "drupal/rdf_tools"},
			expected:  "yes, use drupal/rdf_tools",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.abandoned.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
