// Package vfs builds the emulator's in-memory filesystem from declarative
// sources: an XML descriptor, a host directory, or compiled-in defaults.
package vfs

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/josephlewis42/vshell/core/vos"
)

// The descriptor looks like:
//
//	<vfs>
//	  <dir name="/">
//	    <dir name="etc">
//	      <file name="motd">Welcome</file>
//	    </dir>
//	    <file name="blob" base64="true">AAECAw==</file>
//	  </dir>
//	</vfs>
//
// Unknown elements are ignored so descriptors can carry annotations.
type xmlVFS struct {
	XMLName xml.Name `xml:"vfs"`
	Dirs    []xmlDir `xml:"dir"`
}

type xmlDir struct {
	Name  string    `xml:"name,attr"`
	Dirs  []xmlDir  `xml:"dir"`
	Files []xmlFile `xml:"file"`
}

type xmlFile struct {
	Name     string `xml:"name,attr"`
	Base64   string `xml:"base64,attr"`
	Encoding string `xml:"encoding,attr"`
	Content  string `xml:",chardata"`
}

// LoadXML reads an XML descriptor from the host filesystem and builds an
// in-memory VFS from it.
func LoadXML(descriptorPath string) (vos.VFS, error) {
	contents, err := ioutil.ReadFile(descriptorPath)
	if err != nil {
		return nil, err
	}

	return ParseXML(contents)
}

// ParseXML builds an in-memory VFS from descriptor bytes.
func ParseXML(contents []byte) (vos.VFS, error) {
	var doc xmlVFS
	if err := xml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("invalid XML: %v", err)
	}

	var root *xmlDir
	for i := range doc.Dirs {
		if doc.Dirs[i].Name == "/" {
			root = &doc.Dirs[i]
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf(`<vfs> is missing <dir name="/">`)
	}

	fs := afero.NewMemMapFs()
	if err := buildDir(fs, "/", root); err != nil {
		return nil, err
	}
	return fs, nil
}

func buildDir(fs vos.VFS, dir string, el *xmlDir) error {
	for i := range el.Dirs {
		child := &el.Dirs[i]
		if child.Name == "" {
			return fmt.Errorf("<dir> under %q is missing the 'name' attribute", dir)
		}
		childPath := path.Join(dir, child.Name)
		if err := fs.MkdirAll(childPath, 0755); err != nil {
			return err
		}
		if err := buildDir(fs, childPath, child); err != nil {
			return err
		}
	}

	for i := range el.Files {
		file := &el.Files[i]
		if file.Name == "" {
			return fmt.Errorf("<file> under %q is missing the 'name' attribute", dir)
		}

		data, err := fileContents(file)
		if err != nil {
			return fmt.Errorf("reading contents of file %q: %v", file.Name, err)
		}

		if err := afero.WriteFile(fs, path.Join(dir, file.Name), data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func fileContents(file *xmlFile) ([]byte, error) {
	switch file.Base64 {
	case "1", "true", "yes", "True", "TRUE", "Yes", "YES":
		return base64.StdEncoding.Strict().DecodeString(file.Content)
	}

	if file.Encoding != "" {
		enc, err := ianaindex.IANA.Encoding(file.Encoding)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unknown encoding %q", file.Encoding)
		}
		return enc.NewEncoder().Bytes([]byte(file.Content))
	}

	return []byte(file.Content), nil
}

// ImportDir deep-copies a host directory into a fresh in-memory VFS. The
// host is never written to.
func ImportDir(hostPath string) (vos.VFS, error) {
	stat, err := os.Stat(hostPath)
	switch {
	case err != nil:
		return nil, err
	case !stat.IsDir():
		return nil, fmt.Errorf("%s: not a directory", hostPath)
	}

	base := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), hostPath))
	fs := afero.NewMemMapFs()

	err = afero.Walk(base, "/", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return fs.MkdirAll(name, 0755)
		}

		data, err := afero.ReadFile(base, name)
		if err != nil {
			return err
		}
		return afero.WriteFile(fs, name, data, info.Mode().Perm())
	})
	if err != nil {
		return nil, err
	}

	return fs, nil
}
