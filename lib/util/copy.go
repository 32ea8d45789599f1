package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// CopyDirectoryOrFile copies src to dst. Directories are copied recursively
// and merged into an existing dst; files already present in dst are left
// untouched.
func CopyDirectoryOrFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return oops.Wrapf(err, "cannot copy %s", src)
	}
	if !info.IsDir() {
		return copyFile(fs, src, dst, info.Mode())
	}

	return afero.Walk(fs, src, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			return fs.MkdirAll(target, dirMode(fi.Mode()))
		}
		return copyFile(fs, path, target, fi.Mode())
	})
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	if CheckFileExists(fs, dst) {
		log.WithField("path", dst).Debug("target exists, not overwriting")
		return nil
	}
	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return oops.Wrapf(err, "creating parent of %s", dst)
	}

	in, err := fs.Open(src)
	if err != nil {
		return oops.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
	if err != nil {
		return oops.Wrapf(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return oops.Wrapf(err, "copying %s to %s", src, dst)
	}
	return out.Close()
}

func dirMode(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm | 0o700
	}
	return 0o755
}
