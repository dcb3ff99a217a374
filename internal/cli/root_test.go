package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"invoice-bookkeeping-backend/internal/config"
	"invoice-bookkeeping-backend/internal/services/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorageDriver: config.DriverSQLite,
		StorageKey:    "invoices",
		SQLitePath:    filepath.Join(t.TempDir(), "root.db"),
	}
}

func TestExecute_ReportsValidationFailureOnce(t *testing.T) {
	cmd := NewRootCmdForTest(testConfig(t))
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"add", "--name", "Ab", "--due", "2099-01-01", "--amount", "10"})

	err := execute(cmd, &stderr)
	require.Error(t, err)

	var verr *validation.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, strings.Count(stderr.String(), "Invoice name must be at least 3 characters"))
	assert.NotContains(t, stderr.String(), "Error:")
}

func TestExecute_PrintsUnreportedErrors(t *testing.T) {
	cmd := NewRootCmdForTest(testConfig(t))
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"list", "--status", "overdue"})

	require.Error(t, execute(cmd, &stderr))
	assert.Equal(t, 1, strings.Count(stderr.String(), "overdue"))
	assert.Contains(t, stderr.String(), "Error:")
}
