package commands

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

func wcTestFs(virtOS vos.VOS) error {
	if err := virtOS.MkdirAll("/srv", 0755); err != nil {
		return err
	}
	return afero.WriteFile(virtOS, "/srv/data.txt", []byte("hello world\nsecond line\n"), 0644)
}

func TestWc(t *testing.T) {
	cases := goldenTestSuite{
		"default": {Args: []string{"wc", "/srv/data.txt"}, Setup: wcTestFs},
		"lines":   {Args: []string{"wc", "-l", "/srv/data.txt"}, Setup: wcTestFs},
		"words":   {Args: []string{"wc", "-w", "/srv/data.txt"}, Setup: wcTestFs},
		"bytes":   {Args: []string{"wc", "-c", "/srv/data.txt"}, Setup: wcTestFs},
	}

	cases.Run(t, Wc)
}
