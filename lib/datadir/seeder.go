package datadir

import (
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/spf13/afero"

	"github.com/titellus/geonetwork-pnf/lib/util"
)

// SeedFailure records one copy that could not be completed.
type SeedFailure struct {
	Source string
	Target string
	Err    error
}

// SeedReport lists what a Seed call copied.
type SeedReport struct {
	Copied   []string
	Failures []SeedFailure
}

// Empty reports whether nothing was copied or attempted.
func (r SeedReport) Empty() bool {
	return len(r.Copied) == 0 && len(r.Failures) == 0
}

// Seeder fills empty data directories with the content bundled in the webapp.
// It only writes into missing or empty targets and never removes anything.
type Seeder struct {
	fs afero.Fs
}

// NewSeeder returns a seeder working on fs.
func NewSeeder(fs afero.Fs) *Seeder {
	return &Seeder{fs: fs}
}

// Seed copies the bundled codelists into an empty codelist directory and, when
// the schema plugin catalogue is missing, the catalogue and every bundled
// schema plugin not yet installed. Copy failures are logged and reported.
func (s *Seeder) Seed(cfg Config) SeedReport {
	log.WithField("root", cfg.SystemDataDir()).Info("data directory initialization")
	var report SeedReport
	bundled := DefaultDataDir(cfg.WebappDir())

	thesauri := cfg.ThesauriDir()
	if util.IsEmptyDir(s.fs, thesauri) {
		log.WithField("dir", thesauri).Info("copying codelists directory")
		s.copy(&report, filepath.Join(bundled, "config", "codelist"), thesauri)
	}

	catalog := filepath.Join(cfg.ConfigDir(), SchemaPluginsCatalog)
	if !util.CheckFileExists(s.fs, catalog) {
		log.WithField("file", catalog).Info("copying schema plugin catalogue")
		if s.copy(&report, filepath.Join(cfg.WebappDir(), "WEB-INF", SchemaPluginsCatalog), catalog) {
			s.copyMissingPlugins(&report, filepath.Join(bundled, "config", "schema_plugins"), cfg.SchemaPluginsDir())
		}
	}
	return report
}

// copyMissingPlugins copies every entry of src not already present in dst.
func (s *Seeder) copyMissingPlugins(report *SeedReport, src, dst string) {
	entries, err := afero.ReadDir(s.fs, src)
	if err != nil {
		log.WithError(err).WithField("dir", src).Warn("cannot list bundled schema plugins")
		report.Failures = append(report.Failures, SeedFailure{Source: src, Target: dst, Err: err})
		return
	}
	for _, entry := range entries {
		target := filepath.Join(dst, entry.Name())
		if util.CheckFileExists(s.fs, target) {
			continue
		}
		s.copy(report, filepath.Join(src, entry.Name()), target)
	}
}

func (s *Seeder) copy(report *SeedReport, src, dst string) bool {
	if err := util.CopyDirectoryOrFile(s.fs, src, dst); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":     "(Seeder) copy",
			"source": src,
			"target": dst,
		}).Error("copy failed")
		report.Failures = append(report.Failures, SeedFailure{Source: src, Target: dst, Err: err})
		return false
	}
	report.Copied = append(report.Copied, dst)
	return true
}
