//go:build basic

// Package integration contains integration tests for tablequal.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTablequalScoreSmoke scores a clean dataset end to end with run
// tracking disabled and checks the rendered report.
func TestTablequalScoreSmoke(t *testing.T) {
	dataset := writeSampleDataset(t)

	cmd := exec.Command(getTablequalBinary(), "score", dataset, "--history-backend", "none", "--color", "no")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	out := stdout.String()
	assert.Contains(t, out, "Completeness")
	assert.Contains(t, out, "Integrity")
	assert.Contains(t, out, "Overall score: 5.0")
}

// TestTablequalCheckFailsBelowThreshold verifies the non-zero exit gate.
func TestTablequalCheckFailsBelowThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.csv")
	content := "a,b\n1,\n2,\n3,\n4,\n5,x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cmd := exec.Command(getTablequalBinary(), "check", path, "--threshold", "5.0", "--history-backend", "none")
	output, err := cmd.CombinedOutput()
	require.Error(t, err, "check should exit non-zero below the threshold")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(output), "Check failed")
}
