package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/isdmx/resumebox/config"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"config", "transport", "http-port", "root-dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	require.NoError(t, cmd.ParseFlags([]string{"-c", "custom.yaml", "--transport", "http"}))
	assert.Equal(t, "custom.yaml", cmd.Flags().Lookup("config").Value.String())
	assert.Equal(t, "http", cmd.Flags().Lookup("transport").Value.String())
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"unexpected"})

	require.Error(t, cmd.Execute())
}

func TestAppGraph(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, fx.ValidateApp(appOptions(config.Options{})...))
}
