package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetInitCmd_Exists verifies getInitCmd returns a valid
// command.
func TestGetInitCmd_Exists(t *testing.T) {
	cmd := getInitCmd()
	require.NotNil(t, cmd, "Init command should exist")
	assert.Equal(t, "init", cmd.Use, "Command name should be init")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetInitCmd_ForceFlag verifies the force flag exists
// with shorthand.
func TestGetInitCmd_ForceFlag(t *testing.T) {
	cmd := getInitCmd()

	flag := cmd.Flags().Lookup("force")
	require.NotNil(t, flag, "force flag should exist")
	assert.Equal(t, "f", flag.Shorthand,
		"force flag should have shorthand f")
	assert.Equal(t, "false", flag.DefValue,
		"force flag should default to false")
}

// TestGetResolveCmd_Exists verifies getResolveCmd returns a
// valid command.
func TestGetResolveCmd_Exists(t *testing.T) {
	cmd := getResolveCmd()
	require.NotNil(t, cmd, "Resolve command should exist")
	assert.Contains(t, cmd.Use, "resolve",
		"Command name should be resolve")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetResolveCmd_FormatFlag verifies the format flag
// defaults to text.
func TestGetResolveCmd_FormatFlag(t *testing.T) {
	cmd := getResolveCmd()

	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag, "format flag should exist")
	assert.Equal(t, "F", flag.Shorthand,
		"format flag should have shorthand F")
	assert.Equal(t, "text", flag.DefValue,
		"format flag should default to text")
}

// TestGetResolveCmd_LongDescription verifies the supported
// definition forms are documented.
func TestGetResolveCmd_LongDescription(t *testing.T) {
	cmd := getResolveCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "EPSG:4326",
		"Long description should mention authority codes")
	assert.Contains(t, cmd.Long, "proj4",
		"Long description should mention proj4 strings")
	assert.Contains(t, cmd.Long, "WGS84",
		"Long description should mention well-known names")
}

// TestGetRegisterCmd_Exists verifies getRegisterCmd returns a
// valid command.
func TestGetRegisterCmd_Exists(t *testing.T) {
	cmd := getRegisterCmd()
	require.NotNil(t, cmd, "Register command should exist")
	assert.Contains(t, cmd.Use, "register",
		"Command name should be register")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetRegisterCmd_NameFlag verifies the name flag exists
// with shorthand.
func TestGetRegisterCmd_NameFlag(t *testing.T) {
	cmd := getRegisterCmd()

	flag := cmd.Flags().Lookup("name")
	require.NotNil(t, flag, "name flag should exist")
	assert.Equal(t, "n", flag.Shorthand,
		"name flag should have shorthand n")
}

// TestGetSyncCmd_Exists verifies getSyncCmd returns a valid
// command.
func TestGetSyncCmd_Exists(t *testing.T) {
	cmd := getSyncCmd()
	require.NotNil(t, cmd, "Sync command should exist")
	assert.Equal(t, "sync", cmd.Use, "Command name should be sync")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetSyncCmd_ConnectionFlags verifies the connection
// override flags exist.
func TestGetSyncCmd_ConnectionFlags(t *testing.T) {
	cmd := getSyncCmd()

	for _, name := range []string{
		"host", "port", "user", "password", "database",
	} {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "%s flag should exist", name)
	}
}

// TestRootCmd_Subcommands verifies all subcommands are
// registered.
func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "resolve")
	assert.Contains(t, names, "register")
	assert.Contains(t, names, "sync")
}
