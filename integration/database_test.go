//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTablequalWithMySQL tests the tablequal CLI with a MySQL history backend.
func TestTablequalWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tablequal",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/tablequal?parseTime=true", host, port.Port())
	runHistoryRoundTrip(t, "mysql", connStr)
}

// TestTablequalWithPostgres tests the tablequal CLI with a PostgreSQL history backend.
func TestTablequalWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryRoundTrip(t, "postgresql", connStr)
}

// runHistoryRoundTrip scores a dataset against the given backend, then lists
// and clears the recorded history.
func runHistoryRoundTrip(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("TABLEQUAL_HISTORY_BACKEND", backend)
	_ = os.Setenv("TABLEQUAL_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("TABLEQUAL_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("TABLEQUAL_HISTORY_DB_CONNECT") }()

	dataset := writeSampleDataset(t)

	// Run tablequal history clear
	err := runTablequalCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run tablequal score on the sample dataset
	err = runTablequalCommand(t, "score", dataset)
	require.NoError(t, err)

	// Run tablequal check on the sample dataset
	err = runTablequalCommand(t, "check", dataset, "--threshold", "3.0")
	require.NoError(t, err)

	// Run tablequal history list
	err = runTablequalCommand(t, "history", "list", "--limit", "5")
	require.NoError(t, err)

	// Run tablequal history clear again to leave a clean database
	err = runTablequalCommand(t, "history", "clear")
	require.NoError(t, err)
}

func runTablequalCommand(t *testing.T, args ...string) error {
	binaryPath := getTablequalBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
