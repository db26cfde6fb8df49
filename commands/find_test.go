package commands

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

func findTestFs(virtOS vos.VOS) error {
	if err := virtOS.MkdirAll("/srv/www", 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(virtOS, "/srv/hello.txt", []byte("hi\n"), 0644); err != nil {
		return err
	}
	if err := afero.WriteFile(virtOS, "/srv/run.sh", []byte("#!/bin/sh\n"), 0755); err != nil {
		return err
	}
	return afero.WriteFile(virtOS, "/srv/www/index.html", []byte("<html/>\n"), 0644)
}

func TestFind(t *testing.T) {
	cases := goldenTestSuite{
		"all":      {Args: []string{"find", "/srv"}, Setup: findTestFs},
		"name":     {Args: []string{"find", "/srv", "-name", "*.txt"}, Setup: findTestFs},
		"type-d":   {Args: []string{"find", "/srv", "-type", "d"}, Setup: findTestFs},
		"maxdepth": {Args: []string{"find", "/srv", "-maxdepth", "1"}, Setup: findTestFs},
		"missing":  {Args: []string{"find", "/nope"}, Setup: findTestFs},
	}

	cases.Run(t, Find)
}
