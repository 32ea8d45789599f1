package util

import (
	"github.com/spf13/afero"
)

// CheckFileExists reports whether fpath can be stat'ed on fs.
func CheckFileExists(fs afero.Fs, fpath string) bool {
	_, e := fs.Stat(fpath)
	return e == nil
}

// IsEmptyDir reports whether dir is missing or has no entries.
func IsEmptyDir(fs afero.Fs, dir string) bool {
	f, err := fs.Open(dir)
	if err != nil {
		return true
	}
	defer f.Close()
	names, err := f.Readdirnames(1)
	return err != nil || len(names) == 0
}
