package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	config, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, config)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_NoArgumentsUsesDefaults(t *testing.T) {
	t.Parallel()

	config, shouldExit, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "regen.hcl", config.ConfigPath)
	require.Equal(t, "", config.RegistryOverride)
	require.Equal(t, 1, config.Workers)
	require.False(t, config.CheckDocs)
}

func TestParse_PositionalArgumentIsRegistryOverride(t *testing.T) {
	t.Parallel()

	config, _, err := Parse([]string{"/opt/sdk/registry"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.Equal(t, "/opt/sdk/registry", config.RegistryOverride)
}

func TestParse_RejectsExtraPositionalArguments(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"/a", "/b"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_UnknownFlagFails(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--this-is-not-a-valid-flag"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevelFails(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-log-level", "verbose"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, exitErr.Message, "invalid log-level")
}

func TestParse_InvalidLogFormatFails(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"-log-format", "xml"}, &bytes.Buffer{})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, exitErr.Message, "invalid log-format")
}

func TestParse_CheckDocsFlag(t *testing.T) {
	t.Parallel()

	config, _, err := Parse([]string{"-check-docs"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.True(t, config.CheckDocs)
}
