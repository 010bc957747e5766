package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// seededDB seeds testdata/core.yaml into a fresh database.
func seededDB(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "metnet.db")
	_, _, err := execute(t, "seed", "--db", db, "testdata/core.yaml")
	require.NoError(t, err)
	return db
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "metnet", cmd.Use)
	assert.Contains(t, cmd.Long, "metabolic network")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"dump"},
		{"seed"},
		{"genome", "load"},
		{"accessions"},
		{"config", "validate"},
		{"test"},
	}

	for _, path := range commands {
		name := strings.Join(path, " ")
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %s should exist", name)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("metrics-file"))
}

func TestDumpCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	dumpCmd, _, err := cmd.Find([]string{"dump"})
	require.NoError(t, err)

	outputFlag := dumpCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	dbFlag := dumpCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, dumpCmd.Flags().Lookup("indent"))
	require.NotNil(t, dumpCmd.Flags().Lookup("attach-all-copies"))
}

func TestGenomeLoadCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	loadCmd, _, err := cmd.Find([]string{"genome", "load"})
	require.NoError(t, err)

	for _, name := range []string{"db", "accession-type", "accession", "warning-limit"} {
		assert.NotNil(t, loadCmd.Flags().Lookup(name), name)
	}
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, "--format", "invalid", "accessions", "testdata/header.gb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSetup_ConfigFile(t *testing.T) {
	opts := &RootOptions{ConfigPath: "testdata/metnet.cue"}
	require.NoError(t, opts.setup(&bytes.Buffer{}))

	assert.Equal(t, "bigg.db", opts.Config.Database)
	assert.Equal(t, 2, opts.Config.Warnings.Limit)
	assert.True(t, opts.Config.Matrix.AttachAllCopies)
	assert.False(t, opts.logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, opts.logger.Enabled(context.Background(), slog.LevelWarn))

	path, err := opts.databasePath("")
	require.NoError(t, err)
	assert.Equal(t, "bigg.db", path)

	path, err = opts.databasePath("other.db")
	require.NoError(t, err)
	assert.Equal(t, "other.db", path)
}

func TestSetup_VerboseOverridesLevel(t *testing.T) {
	opts := &RootOptions{ConfigPath: "testdata/metnet.cue", Verbose: true}
	require.NoError(t, opts.setup(&bytes.Buffer{}))
	assert.True(t, opts.logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetup_InvalidConfig(t *testing.T) {
	opts := &RootOptions{ConfigPath: "testdata/invalid.cue"}
	err := opts.setup(&bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDatabasePath_Required(t *testing.T) {
	opts := &RootOptions{}
	require.NoError(t, opts.setup(&bytes.Buffer{}))

	_, err := opts.databasePath("")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMetricsFile(t *testing.T) {
	db := seededDB(t)
	metricsPath := filepath.Join(t.TempDir(), "metnet.prom")

	_, _, err := execute(t, "--metrics-file", metricsPath, "dump", "e_coli_core", "--db", db)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `metnet_recon_rows_total{stream="reaction"} 3`)
	assert.Contains(t, string(data), `metnet_recon_dropped_rows_total{reason="missing_metabolite"} 1`)
	assert.Contains(t, string(data), "metnet_recon_duration_seconds_count 1")
}
