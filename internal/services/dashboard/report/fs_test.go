package report

import (
	"io/fs"
)

// filteredFS hides one file from an underlying filesystem.
type filteredFS struct {
	fs.FS
	hide string
}

func (f filteredFS) Open(name string) (fs.File, error) {
	if name == f.hide {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f.FS.Open(name)
}
