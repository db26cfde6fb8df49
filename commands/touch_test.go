package commands

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/vshell/core/vos"
	"github.com/josephlewis42/vshell/core/vos/vostest"
)

func runTouch(t *testing.T, setup func(vos.VOS) error, args ...string) (vos.VOS, *vostest.Cmd) {
	t.Helper()

	var capturedOS vos.VOS
	cmd := vostest.Command(Touch, args[0], args[1:]...)
	cmd.Setup = func(virtOS vos.VOS) error {
		capturedOS = virtOS
		if setup != nil {
			return setup(virtOS)
		}
		return nil
	}

	_, err := cmd.CombinedOutput()
	require.NoError(t, err)
	return capturedOS, cmd
}

func TestTouch(t *testing.T) {
	seed := func(virtOS vos.VOS) error {
		return virtOS.MkdirAll("/srv", 0755)
	}

	t.Run("creates missing files", func(t *testing.T) {
		virtOS, cmd := runTouch(t, seed, "touch", "/srv/new.txt")

		assert.Equal(t, 0, cmd.ExitStatus)
		stat, err := virtOS.Stat("/srv/new.txt")
		require.NoError(t, err)
		assert.False(t, stat.IsDir())
	})

	t.Run("updates times of existing files", func(t *testing.T) {
		old := time.Date(2000, 6, 7, 8, 9, 10, 0, time.UTC)
		virtOS, cmd := runTouch(t, func(virtOS vos.VOS) error {
			if err := seed(virtOS); err != nil {
				return err
			}
			if err := afero.WriteFile(virtOS, "/srv/old.txt", []byte("x"), 0644); err != nil {
				return err
			}
			return virtOS.Chtimes("/srv/old.txt", old, old)
		}, "touch", "/srv/old.txt")

		assert.Equal(t, 0, cmd.ExitStatus)
		stat, err := virtOS.Stat("/srv/old.txt")
		require.NoError(t, err)
		assert.True(t, stat.ModTime().After(old))
	})

	t.Run("refuses directories", func(t *testing.T) {
		_, cmd := runTouch(t, seed, "touch", "/srv")

		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("fails on missing parents", func(t *testing.T) {
		virtOS, cmd := runTouch(t, seed, "touch", "/nope/new.txt")

		assert.Equal(t, 1, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/nope/new.txt")
		assert.False(t, exists)
	})

	t.Run("no-create skips missing files", func(t *testing.T) {
		virtOS, cmd := runTouch(t, seed, "touch", "-c", "/srv/none.txt")

		assert.Equal(t, 0, cmd.ExitStatus)
		exists, _ := afero.Exists(virtOS, "/srv/none.txt")
		assert.False(t, exists)
	})

	t.Run("requires an operand", func(t *testing.T) {
		_, cmd := runTouch(t, nil, "touch")

		assert.Equal(t, 1, cmd.ExitStatus)
	})
}
