package config_test

import (
	"reflect"
	"testing"

	"github.com/NickStees/drupal-update/pkg/cli/config"
	"github.com/NickStees/drupal-update/pkg/domain/types"
)

func TestUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Update
		wantErr bool
	}{
		{
			name:    "Default type",
			cfg:     config.Update{Type: "semver-safe-update"},
			wantErr: false,
		},
		{
			name:    "All type",
			cfg:     config.Update{Type: "all"},
			wantErr: false,
		},
		{
			name:    "Unknown type",
			cfg:     config.Update{Type: "major-only"},
			wantErr: true,
		},
		{
			name:    "Empty type",
			cfg:     config.Update{Type: ""},
			wantErr: true,
		},
		{
			name:    "Markdown output file",
			cfg:     config.Update{Type: "all", Output: "report.md"},
			wantErr: false,
		},
		{
			name:    "Non-markdown output file",
			cfg:     config.Update{Type: "all", Output: "report.txt"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdate_ExcludeList(t *testing.T) {
	tests := []struct {
		name    string
		exclude string
		want    []string
	}{
		{
			name:    "Empty",
			exclude: "",
			want:    nil,
		},
		{
			name:    "Comma separated",
			exclude: "drupal/paragraphs,drupal/pathauto",
			want:    []string{"drupal/paragraphs", "drupal/pathauto"},
		},
		{
			name:    "Comma and space separated",
			exclude: "drupal/paragraphs, drupal/pathauto",
			want:    []string{"drupal/paragraphs", "drupal/pathauto"},
		},
		{
			name:    "Space separated",
			exclude: "drupal/paragraphs drupal/pathauto",
			want:    []string{"drupal/paragraphs", "drupal/pathauto"},
		},
		{
			name:    "Trailing separator",
			exclude: "drupal/paragraphs,",
			want:    []string{"drupal/paragraphs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Update{Exclude: tt.exclude}
			got := cfg.ExcludeList()
			if len(tt.want) == 0 {
				if len(got) != 0 {
					t.Errorf("ExcludeList() = %v, want empty", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExcludeList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdate_RunConfig(t *testing.T) {
	cfg := config.Update{
		Type:    "all",
		Core:    true,
		Exclude: "drupal/paragraphs",
		Output:  "report.md",
	}

	rc, err := cfg.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig() unexpected error = %v", err)
	}

	if rc.Type != types.UpdateTypeAll {
		t.Errorf("RunConfig().Type = %v, want %v", rc.Type, types.UpdateTypeAll)
	}
	if !rc.Core {
		t.Error("RunConfig().Core = false, want true")
	}
	if !rc.Excluded("drupal/paragraphs") {
		t.Error("RunConfig() should exclude drupal/paragraphs")
	}
	if rc.Excluded("drupal/pathauto") {
		t.Error("RunConfig() should not exclude drupal/pathauto")
	}

	if _, err := (&config.Update{Type: "bogus"}).RunConfig(); err == nil {
		t.Error("RunConfig() should fail for an invalid type")
	}
}
