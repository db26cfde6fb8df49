package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/vshell/core/vos"
	"github.com/josephlewis42/vshell/core/vos/vostest"
)

func runRm(t *testing.T, args ...string) (vos.VOS, *vostest.Cmd) {
	t.Helper()

	var capturedOS vos.VOS
	cmd := vostest.Command(Rm, args[0], args[1:]...)
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

func TestRm(t *testing.T) {
	t.Run("removes files", func(t *testing.T) {
		virtOS, cmd := runRm(t, "rm", "/srv/a.txt")

		assert.Equal(t, 0, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/srv/a.txt")
		assert.False(t, exists)
	})

	t.Run("refuses directories without -r", func(t *testing.T) {
		virtOS, cmd := runRm(t, "rm", "/srv/www")

		assert.Equal(t, 1, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/srv/www")
		assert.True(t, exists)
	})

	t.Run("removes directories recursively", func(t *testing.T) {
		virtOS, cmd := runRm(t, "rm", "-r", "/srv/www")

		assert.Equal(t, 0, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/srv/www")
		assert.False(t, exists)
	})

	t.Run("fails on missing paths", func(t *testing.T) {
		_, cmd := runRm(t, "rm", "/nope")

		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("force ignores missing paths", func(t *testing.T) {
		_, cmd := runRm(t, "rm", "-f", "/nope")

		assert.Equal(t, 0, cmd.ExitStatus)
	})
}
