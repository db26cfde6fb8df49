package vfs

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

// Default builds the minimal fallback filesystem used when no descriptor is
// supplied or the supplied one couldn't be loaded.
func Default(username string) vos.VFS {
	if username == "" {
		username = "user"
	}

	fs := afero.NewMemMapFs()

	home := fmt.Sprintf("/home/%s", username)
	for _, dir := range []string{"/etc", home} {
		// MemMapFs can't fail here.
		_ = fs.MkdirAll(dir, 0755)
	}

	for _, file := range []struct {
		path     string
		contents string
	}{
		{"/readme.txt", "This is the default in-memory filesystem.\n"},
		{"/etc/motd", "Welcome to the shell emulator!\n"},
		{home + "/notes.txt", "Hello from the VFS!\n"},
	} {
		_ = afero.WriteFile(fs, file.path, []byte(file.contents), 0644)
	}

	return fs
}
