package model_test

import (
	"reflect"
	"testing"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

func TestParseManifest_PatchOrder(t *testing.T) {
	// Descriptor order must survive parsing: the classifier picks the last
	// declared descriptor that matches command output.
	doc := `{
		"name": "example/site",
		"extra": {
			"patches": {
				"drupal/entity_browser": {
					"Zebra fix last in alphabet": "https://example.com/a.patch",
					"Alpha fix first in alphabet": "https://example.com/b.patch",
					"Middle fix": "https://example.com/c.patch"
				},
				"drupal/token": {
					"Single fix": "https://example.com/d.patch"
				}
			}
		}
	}`

	m, err := model.ParseManifest([]byte(doc))
	if err != nil {
		t.Fatalf("ParseManifest() unexpected error = %v", err)
	}

	if m.Name != "example/site" {
		t.Errorf("Name = %q, want %q", m.Name, "example/site")
	}

	want := []string{
		"Zebra fix last in alphabet",
		"Alpha fix first in alphabet",
		"Middle fix",
	}
	if got := m.Patches.For("drupal/entity_browser"); !reflect.DeepEqual(got, want) {
		t.Errorf("Patches order = %v, want %v", got, want)
	}

	if got := m.Patches.For("drupal/token"); !reflect.DeepEqual(got, []string{"Single fix"}) {
		t.Errorf("Patches = %v, want single descriptor", got)
	}

	if got := m.Patches.For("drupal/unpatched"); got != nil {
		t.Errorf("Patches for unpatched package = %v, want nil", got)
	}
}

func TestParseManifest_NoPatches(t *testing.T) {
	m, err := model.ParseManifest([]byte(`{"name":"example/site"}`))
	if err != nil {
		t.Fatalf("ParseManifest() unexpected error = %v", err)
	}
	if len(m.Patches) != 0 {
		t.Errorf("Patches = %v, want empty", m.Patches)
	}
	if m.PatchesFile != "" {
		t.Errorf("PatchesFile = %q, want empty", m.PatchesFile)
	}
}

func TestParseManifest_PatchesFileReference(t *testing.T) {
	doc := `{
		"name": "example/site",
		"extra": {
			"patches-file": "patches/composer.patches.json"
		}
	}`

	m, err := model.ParseManifest([]byte(doc))
	if err != nil {
		t.Fatalf("ParseManifest() unexpected error = %v", err)
	}
	if m.PatchesFile != "patches/composer.patches.json" {
		t.Errorf("PatchesFile = %q, want reference path", m.PatchesFile)
	}
}

func TestParseManifest_ArrayPatchList(t *testing.T) {
	// composer-patches also accepts a bare list of patch URLs. There are no
	// descriptors in that form, so nothing can be matched later.
	doc := `{
		"extra": {
			"patches": {
				"drupal/token": ["https://example.com/a.patch", "https://example.com/b.patch"]
			}
		}
	}`

	m, err := model.ParseManifest([]byte(doc))
	if err != nil {
		t.Fatalf("ParseManifest() unexpected error = %v", err)
	}
	if got := m.Patches.For("drupal/token"); got != nil {
		t.Errorf("Patches = %v, want nil for array form", got)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "Broken JSON", doc: `{"name":`},
		{name: "Patches not an object", doc: `{"extra":{"patches":"nope"}}`},
		{name: "Descriptor value garbage", doc: `{"extra":{"patches":{"drupal/token":true}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := model.ParseManifest([]byte(tt.doc)); err == nil {
				t.Error("ParseManifest() expected error")
			}
		})
	}
}

func TestParsePatchesFile(t *testing.T) {
	doc := `{
		"patches": {
			"drupal/webform": {
				"Fix token replacement": "https://example.com/e.patch"
			}
		}
	}`

	patches, err := model.ParsePatchesFile([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePatchesFile() unexpected error = %v", err)
	}
	if got := patches.For("drupal/webform"); !reflect.DeepEqual(got, []string{"Fix token replacement"}) {
		t.Errorf("Patches = %v, want single descriptor", got)
	}

	empty, err := model.ParsePatchesFile([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParsePatchesFile() unexpected error = %v", err)
	}
	if empty != nil {
		t.Errorf("Patches = %v, want nil for empty document", empty)
	}
}
