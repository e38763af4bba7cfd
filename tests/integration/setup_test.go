//go:build integration

package integration

import (
	"database/sql"
	"os"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/db"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestEnv holds all test dependencies
type TestEnv struct {
	DB     *sql.DB
	Config *config.Config
}

// SetupTestEnv initializes the test environment against a real Postgres.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	cfg := loadTestConfig(t)

	database, err := db.Init(&cfg.DB)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Start from a clean slate
	if _, err := database.Exec(`TRUNCATE tasks, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return &TestEnv{
		DB:     database,
		Config: cfg,
	}
}

// Cleanup tears the environment down after a test.
func (env *TestEnv) Cleanup(t *testing.T) {
	t.Helper()

	if _, err := env.DB.Exec(`TRUNCATE tasks, users RESTART IDENTITY CASCADE`); err != nil {
		t.Logf("Failed to truncate tables: %v", err)
	}
	if err := env.DB.Close(); err != nil {
		t.Logf("Failed to close database: %v", err)
	}
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	setDefaultEnv("JWT_SECRET", "integration-test-secret")
	setDefaultEnv("DB_NAME", "taskboard_test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}
	return cfg
}

func setDefaultEnv(key, value string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}
