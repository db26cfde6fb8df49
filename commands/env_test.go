package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/vshell/core/vos/vostest"
)

func TestEnv(t *testing.T) {
	cmd := vostest.Command(Env, "env")
	cmd.Env = []string{"USER=testuser", "HOME=/home/testuser"}

	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "HOME=/home/testuser\nUSER=testuser\n", string(out))
}
