package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateCommand(t *testing.T) {
	stdout, _, err := execute(t, "config", "validate", "testdata/metnet.cue")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ testdata/metnet.cue is valid")
	assert.Contains(t, stdout, `database: "bigg.db"`)
	assert.Contains(t, stdout, "logging: level=warn format=text")
	assert.Contains(t, stdout, "warnings.limit: 2")
	assert.Contains(t, stdout, "export.indent: true")
}

func TestConfigValidateCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "config", "validate", "testdata/metnet.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["matrix"].(map[string]any)["attach_all_copies"])
}

func TestConfigValidateCommand_Invalid(t *testing.T) {
	_, _, err := execute(t, "config", "validate", "testdata/invalid.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid config")
}

func TestConfigValidateCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, "config", "validate", "testdata/missing.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
