package datadir

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// Validator checks candidate root directories.
type Validator struct {
	fs afero.Fs
}

// NewValidator returns a validator operating on fs.
func NewValidator(fs afero.Fs) *Validator {
	return &Validator{fs: fs}
}

// ValidateRoot creates candidate if needed and checks it is an existing,
// writable, absolute directory. It returns nil when the candidate is usable
// and a *RootInvalidError naming the first failed check otherwise.
func (v *Validator) ValidateRoot(candidate string) error {
	if err := v.fs.MkdirAll(candidate, 0o755); err != nil {
		return v.reject(candidate, ReasonNotCreatable, err)
	}

	ok, err := afero.DirExists(v.fs, candidate)
	if err != nil || !ok {
		return v.reject(candidate, ReasonNotExistingAfterCreate, err)
	}

	if err := v.probeWritable(candidate); err != nil {
		return v.reject(candidate, ReasonNotWritable, err)
	}

	if !filepath.IsAbs(candidate) {
		return v.reject(candidate, ReasonNotAbsolute, nil)
	}
	return nil
}

// probeWritable creates and removes a temporary file in dir.
func (v *Validator) probeWritable(dir string) error {
	f, err := afero.TempFile(v.fs, dir, ".gn-write-probe-")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	if err := v.fs.Remove(name); err != nil && !os.IsNotExist(err) {
		return oops.Wrapf(err, "removing write probe %s", name)
	}
	return nil
}

func (v *Validator) reject(candidate string, reason Reason, err error) error {
	rejection := &RootInvalidError{Path: candidate, Reason: reason, Err: err}
	fields := logger.Fields{
		"at":        "(Validator) ValidateRoot",
		"candidate": candidate,
		"reason":    string(reason),
	}
	if err != nil {
		log.WithError(err).WithFields(fields).Warn("data directory candidate rejected")
	} else {
		log.WithFields(fields).Warn("data directory candidate rejected")
	}
	return rejection
}
