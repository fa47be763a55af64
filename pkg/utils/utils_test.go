package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaultsWithoutEnvFile(t *testing.T) {
	t.Setenv("DB_NAME", "movies")
	t.Setenv("PORT", "9090")

	config, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if config.App.Port != "9090" {
		t.Errorf("expected port from env, got %q", config.App.Port)
	}
	if config.Database.Name != "movies" {
		t.Errorf("expected db name from env, got %q", config.Database.Name)
	}
	if config.Database.Driver != DriverPostgres {
		t.Errorf("expected default driver postgres, got %q", config.Database.Driver)
	}
	if config.Database.MaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", config.Database.MaxConns)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	content := "APP_NAME=movie-api-test\nDB_DRIVER=memory\nRATE_LIMIT_BURST=5\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	config, err := loadConfig(viper.New(), file)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if config.App.Name != "movie-api-test" {
		t.Errorf("unexpected app name %q", config.App.Name)
	}
	if config.Database.Driver != DriverMemory {
		t.Errorf("unexpected driver %q", config.Database.Driver)
	}
	if config.RateLimit.Burst != 5 {
		t.Errorf("unexpected burst %d", config.RateLimit.Burst)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type body struct {
		Title string `json:"title" validate:"required,notblank"`
		Year  *int   `json:"releaseYear" validate:"required"`
	}

	errs := ValidateStruct(body{Title: "   "})

	if errs["title"] != "Must not be blank" {
		t.Errorf("unexpected title message %q", errs["title"])
	}
	if errs["releaseYear"] != "This field is required" {
		t.Errorf("unexpected releaseYear message %q", errs["releaseYear"])
	}
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"title": "a", "duration": "b"})
	if got != "duration: b; title: a" {
		t.Errorf("unexpected %q", got)
	}
}

func TestPaginationHelpers(t *testing.T) {
	if got := CalculateTotalPages(101, 20); got != 6 {
		t.Errorf("CalculateTotalPages = %d, want 6", got)
	}
	if got := CalculateTotalPages(0, 20); got != 0 {
		t.Errorf("CalculateTotalPages = %d, want 0", got)
	}
	if got := CalculateOffset(2, 20); got != 40 {
		t.Errorf("CalculateOffset = %d, want 40", got)
	}
}

type worded struct {
	Name string `json:"name" validate:"notblank"`
}

func (worded) ValidationMessages() map[string]string {
	return map[string]string{"name": "Genre name is required"}
}

func TestValidateStructUsesProvidedMessages(t *testing.T) {
	errs := ValidateStruct(&worded{})
	if errs["name"] != "Genre name is required" {
		t.Errorf("unexpected name message %q", errs["name"])
	}
}
