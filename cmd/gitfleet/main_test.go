package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectControllers(t *testing.T) {
	t.Parallel()

	t.Run("should wire every subcommand", func(t *testing.T) {
		t.Parallel()

		// when
		all := injectControllers()

		// then
		uses := make([]string, 0, len(all))
		for _, controller := range all {
			uses = append(uses, controller.GetBind().Use)
		}
		assert.Equal(t, []string{"list", "validate", "lock", "add <namespace-url>"}, uses)
	})
}

func TestBuildRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should register subcommands with their flags", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()

		// when
		addSubcommands(root, injectControllers())

		// then
		list, _, err := root.Find([]string{"list"})
		require.NoError(t, err)
		assert.NotNil(t, list.Flags().Lookup("output"))
		assert.NotNil(t, list.Flags().Lookup("provider"))
		add, _, err := root.Find([]string{"add"})
		require.NoError(t, err)
		assert.NotNil(t, add.Flags().Lookup("path"))
		assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	})
}
