package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/vshell/core/vos"
	"github.com/josephlewis42/vshell/core/vos/vostest"
)

func runCp(t *testing.T, args ...string) (vos.VOS, *vostest.Cmd) {
	t.Helper()

	var capturedOS vos.VOS
	cmd := vostest.Command(Cp, args[0], args[1:]...)
	cmd.Setup = func(virtOS vos.VOS) error {
		capturedOS = virtOS
		if err := virtOS.MkdirAll("/srv/www", 0755); err != nil {
			return err
		}
		if err := afero.WriteFile(virtOS, "/srv/a.txt", []byte("alpha\n"), 0644); err != nil {
			return err
		}
		return afero.WriteFile(virtOS, "/srv/www/index.html", []byte("<html/>\n"), 0644)
	}

	_, err := cmd.CombinedOutput()
	require.NoError(t, err)
	return capturedOS, cmd
}

func TestCp(t *testing.T) {
	t.Run("copies a file", func(t *testing.T) {
		virtOS, cmd := runCp(t, "cp", "/srv/a.txt", "/srv/b.txt")

		assert.Equal(t, 0, cmd.ExitStatus)
		data, err := afero.ReadFile(virtOS, "/srv/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "alpha\n", string(data))
	})

	t.Run("copies into a directory under the source name", func(t *testing.T) {
		virtOS, cmd := runCp(t, "cp", "/srv/a.txt", "/srv/www")

		assert.Equal(t, 0, cmd.ExitStatus)
		data, err := afero.ReadFile(virtOS, "/srv/www/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "alpha\n", string(data))
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		virtOS, cmd := runCp(t, "cp", "/srv/a.txt", "/srv/www/index.html")

		assert.Equal(t, 0, cmd.ExitStatus)
		data, err := afero.ReadFile(virtOS, "/srv/www/index.html")
		require.NoError(t, err)
		assert.Equal(t, "alpha\n", string(data))
	})

	t.Run("refuses directories without -r", func(t *testing.T) {
		_, cmd := runCp(t, "cp", "/srv/www", "/backup")

		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("copies directories recursively", func(t *testing.T) {
		virtOS, cmd := runCp(t, "cp", "-r", "/srv/www", "/backup")

		assert.Equal(t, 0, cmd.ExitStatus)
		data, err := afero.ReadFile(virtOS, "/backup/index.html")
		require.NoError(t, err)
		assert.Equal(t, "<html/>\n", string(data))
	})

	t.Run("fails on missing sources", func(t *testing.T) {
		_, cmd := runCp(t, "cp", "/srv/nope.txt", "/srv/b.txt")

		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("fails on missing destination parents", func(t *testing.T) {
		virtOS, cmd := runCp(t, "cp", "/srv/a.txt", "/nope/b.txt")

		assert.Equal(t, 1, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/nope/b.txt")
		assert.False(t, exists)
	})
}
