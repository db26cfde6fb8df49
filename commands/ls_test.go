package commands

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

func lsTestFs(virtOS vos.VOS) error {
	if err := virtOS.MkdirAll("/srv/www", 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(virtOS, "/srv/hello.txt", []byte("hi\n"), 0644); err != nil {
		return err
	}
	if err := afero.WriteFile(virtOS, "/srv/run.sh", []byte("#!/bin/sh\n"), 0755); err != nil {
		return err
	}
	return afero.WriteFile(virtOS, "/srv/.secret", nil, 0600)
}

func TestLs(t *testing.T) {
	cases := goldenTestSuite{
		"dir":      {Args: []string{"ls", "/srv"}, Setup: lsTestFs},
		"all":      {Args: []string{"ls", "-a", "/srv"}, Setup: lsTestFs},
		"file":     {Args: []string{"ls", "/srv/hello.txt"}, Setup: lsTestFs},
		"missing":  {Args: []string{"ls", "/nope"}, Setup: lsTestFs},
		"multiple": {Args: []string{"ls", "/srv", "/srv/www"}, Setup: lsTestFs},
	}

	cases.Run(t, Ls)
}
