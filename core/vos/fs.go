package vos

import (
	"io/fs"
	"path"
	"syscall"

	"github.com/spf13/afero"
)

// VFS implements a virtual filesystem and is the second layer of the
// virtual OS.
type VFS = afero.Fs

// NewRelativeFs wraps base so every path is resolved against the working
// directory reported by getwd. The emulated filesystem has no symlinks, so
// lexical resolution with path.Clean is exact: "." and ".." collapse and
// ".." above the root stays at the root.
func NewRelativeFs(base VFS, getwd func() (dir string)) VFS {
	return NewPathMappingFs(base, func(op FsOp, name string) (string, error) {
		resolved := ResolvePath(getwd(), name)

		switch op {
		case FsOpMkdir, FsOpCreate:
			// The in-memory filesystem happily creates missing parents;
			// a real shell reports them instead.
			parent, err := base.Stat(path.Dir(resolved))
			switch {
			case err != nil:
				return resolved, fs.ErrNotExist
			case !parent.IsDir():
				return resolved, syscall.ENOTDIR
			}
		}

		return resolved, nil
	})
}

// ResolvePath resolves name against the working directory wd, returning a
// cleaned absolute path.
func ResolvePath(wd, name string) string {
	if !path.IsAbs(name) {
		name = path.Join(wd, name)
	}
	return path.Clean(name)
}
