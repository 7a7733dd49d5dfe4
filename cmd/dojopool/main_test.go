package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SgtClickClack/DojoPool-sub003/internal/cli"
	"github.com/SgtClickClack/DojoPool-sub003/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "dojopool", root.Use)

		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		for _, want := range []string{"dash", "tournaments", "clans", "venues", "chat", "config"} {
			assert.Contains(t, names, want)
		}
	})
}
