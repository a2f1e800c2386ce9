package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalPath(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		if origXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		got := GlobalPath()
		want := "/custom/config/organizer/organizer.yml"
		if got != want {
			t.Errorf("GlobalPath() = %v, want %v", got, want)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		_ = os.Unsetenv("XDG_CONFIG_HOME")
		got := GlobalPath()
		if !filepath.IsAbs(got) {
			t.Errorf("GlobalPath() should return absolute path, got %v", got)
		}
		if filepath.Base(got) != "organizer.yml" {
			t.Errorf("GlobalPath() should end with organizer.yml, got %v", got)
		}
	})
}

func TestProjectPath(t *testing.T) {
	got := ProjectPath()
	want := "organizer.yml"
	if got != want {
		t.Errorf("ProjectPath() = %v, want %v", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	origWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		if origXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()
	_ = os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.GeocoderURL != DefaultGeocoderURL {
		t.Errorf("GeocoderURL = %v, want %v", cfg.GeocoderURL, DefaultGeocoderURL)
	}
	if cfg.DataDir != ".organizer" {
		t.Errorf("DataDir = %v, want .organizer", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()

	origWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		if origXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()
	xdgDir := filepath.Join(tmpDir, "config")
	_ = os.Setenv("XDG_CONFIG_HOME", xdgDir)

	if err := WriteGlobal(&Config{APIBaseURL: "https://global.example.com", DataDir: ".organizer"}); err != nil {
		t.Fatalf("WriteGlobal() error: %v", err)
	}
	if err := WriteProject(&Config{APIBaseURL: "https://project.example.com", DataDir: ".organizer"}); err != nil {
		t.Fatalf("WriteProject() error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://project.example.com" {
		t.Errorf("APIBaseURL = %v, want project value", cfg.APIBaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "complete",
			cfg:     Config{APIBaseURL: "https://api.example.com", OrganizerID: "org_1"},
			wantErr: false,
		},
		{
			name:    "missing api url",
			cfg:     Config{OrganizerID: "org_1"},
			wantErr: true,
		},
		{
			name:    "missing organizer id",
			cfg:     Config{APIBaseURL: "https://api.example.com"},
			wantErr: true,
		},
		{
			name:    "whitespace only api url",
			cfg:     Config{APIBaseURL: "   ", OrganizerID: "org_1"},
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
