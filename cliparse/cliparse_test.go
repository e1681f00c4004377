// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY", "test-admin-key")
	os.Setenv("IP_HASH_SALT", "test-ip-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-key", "k1", "-ip-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "postgres://test"})
	if err == nil {
		t.Fatal("expected error when ADMIN_KEY is missing")
	}
}

func TestParseFlags_MinioGroup(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ADMIN_KEY", "k")
	os.Setenv("IP_HASH_SALT", "s")
	os.Setenv("MINIO_ENDPOINT", "localhost:9000")
	defer os.Clearenv()

	// Endpoint set but no credentials should fail
	if _, err := ParseFlags([]string{}); err == nil {
		t.Fatal("expected error when MinIO credentials are missing")
	}

	os.Setenv("MINIO_ACCESS_KEY", "ak")
	os.Setenv("MINIO_SECRET_KEY", "sk")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinioBucket != "candidate-images" {
		t.Errorf("expected default bucket candidate-images, got %q", cfg.MinioBucket)
	}
}
