package datadir

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/spf13/afero"

	"github.com/titellus/geonetwork-pnf/lib/handler"
)

// DefaultNodeID is the node id used when no node information is available.
const DefaultNodeID = "srv"

// Stage is a step of the resolution pipeline. Stages only move forward.
type Stage int

const (
	StageUninitialized Stage = iota
	StageRootResolved
	StageSubdirsResolved
	StageSeeded
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageRootResolved:
		return "root-resolved"
	case StageSubdirsResolved:
		return "subdirs-resolved"
	case StageSeeded:
		return "seeded"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Options are the inputs of one resolution.
type Options struct {
	// WebappName prefixes the lookup keys, e.g. "geonetwork".
	WebappName string
	// WebappDir is the web application directory; the default root lives below it.
	WebappDir string
	// NodeID identifies the node; empty means DefaultNodeID.
	NodeID string
	// DefaultNode disables the node suffix.
	DefaultNode bool
	// SystemDataDir presets the root and skips the "<webapp>.dir" lookup.
	SystemDataDir string

	Properties Properties
	Context    ContextParams
	// Handler is read for overrides and receives the resolved paths.
	Handler *handler.Params
	// Env defaults to EnvSource{} over the process environment.
	Env Source
}

// Builder resolves and materializes data directory layouts.
type Builder struct {
	fs        afero.Fs
	validator *Validator
	seeder    *Seeder
	stage     Stage
}

// NewBuilder returns a builder working on fs.
func NewBuilder(fs afero.Fs) *Builder {
	return &Builder{
		fs:        fs,
		validator: NewValidator(fs),
		seeder:    NewSeeder(fs),
	}
}

// Resolve runs the pipeline on the OS filesystem.
func Resolve(opts Options) (Config, error) {
	cfg, _, err := NewBuilder(afero.NewOsFs()).Build(opts)
	return cfg, err
}

// Stage reports how far the last Build got.
func (b *Builder) Stage() Stage {
	return b.stage
}

// Build resolves the root, resolves and creates every subdirectory, publishes
// the paths into the handler configuration and seeds empty directories.
// Problems with the configured root fall back to the default root; failing
// to create a subdirectory is returned as a *SubdirCreateError.
func (b *Builder) Build(opts Options) (Config, SeedReport, error) {
	b.stage = StageUninitialized
	opts = normalize(opts)
	chain := NewChain(opts.Properties, opts.Context, HandlerSource(opts.Handler), opts.Env)

	log.WithFields(logger.Fields{
		"at":         "(Builder) Build",
		"webapp":     opts.WebappName,
		"webapp_dir": opts.WebappDir,
		"node":       opts.NodeID,
		"default":    opts.DefaultNode,
	}).Debug("check and create if needed data directory")

	cfg := Config{
		webappDir:   opts.WebappDir,
		nodeID:      opts.NodeID,
		defaultNode: opts.DefaultNode,
		dirs:        make(map[Role]string, len(overridableRoles)+1),
	}
	cfg.systemDataDir, cfg.origin, cfg.rejection = b.resolveRoot(chain, opts)
	b.advance(StageRootResolved)

	if err := b.resolveSubdirs(chain, opts, &cfg); err != nil {
		return Config{}, SeedReport{}, err
	}
	opts.Handler.SetValue(SystemDataDirKey, cfg.systemDataDir)
	b.advance(StageSubdirsResolved)

	report := b.seeder.Seed(cfg)
	b.advance(StageSeeded)

	b.advance(StageReady)
	log.WithFields(logger.Fields{
		"at":   "(Builder) Build",
		"root": cfg.systemDataDir,
	}).Info("data directory ready")
	return cfg, report, nil
}

func normalize(opts Options) Options {
	if opts.NodeID == "" {
		opts.NodeID = DefaultNodeID
	}
	if opts.WebappDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WebappDir = wd
		}
	}
	if opts.Handler == nil {
		opts.Handler = handler.New(nil)
	}
	if opts.Env == nil {
		opts.Env = EnvSource{}
	}
	return opts
}

func (b *Builder) advance(next Stage) {
	log.WithFields(logger.Fields{
		"at":   "(Builder) advance",
		"from": b.stage.String(),
		"to":   next.String(),
	}).Debug("data directory stage")
	b.stage = next
}

// resolveRoot picks the root directory. Any configured candidate gets the
// node suffix and is validated; otherwise, or on rejection, the suffixed
// webapp default is used.
func (b *Builder) resolveRoot(chain *Chain, opts Options) (string, RootOrigin, *RootInvalidError) {
	candidate, origin := opts.SystemDataDir, OriginPreset
	if candidate == "" {
		origin = OriginOverride
		var ok bool
		candidate, ok = chain.Lookup(opts.WebappName+KeySuffix, opts.NodeID)
		if !ok {
			candidate, _ = chain.Lookup(GeonetworkDirKey, opts.NodeID)
		}
	}

	var rejection *RootInvalidError
	root := ""
	if candidate == "" {
		log.WithFields(logger.Fields{
			"at":     "(Builder) resolveRoot",
			"reason": "data directory property is not set",
			"keys":   []string{opts.WebappName + KeySuffix, GeonetworkDirKey},
		}).Warn("no data directory configured")
	} else {
		suffixed := ApplyNodeSuffix(candidate, opts.NodeID, opts.DefaultNode)
		if err := b.validator.ValidateRoot(suffixed); err != nil {
			rejection, _ = err.(*RootInvalidError)
		} else {
			root = suffixed
		}
	}

	if root == "" {
		origin = OriginDefault
		root = ApplyNodeSuffix(DefaultDataDir(opts.WebappDir), opts.NodeID, opts.DefaultNode)
		if err := b.fs.MkdirAll(root, 0o755); err != nil {
			log.WithError(err).WithField("root", root).Error("cannot create default data directory")
		}
		fields := logger.Fields{"at": "(Builder) resolveRoot", "root": root}
		if rejection != nil {
			fields["rejected"] = rejection.Path
			fields["reason"] = string(rejection.Reason)
		}
		log.WithFields(fields).Warn("data directory provided could not be used, using default location")
	}

	root = b.canonical(root)
	log.WithField("root", root).Info("data directory is set")
	return root, origin, rejection
}

// canonical resolves symbolic links and relative segments of root. Failures
// are logged and the path is returned unchanged.
func (b *Builder) canonical(root string) string {
	resolved := filepath.Clean(root)
	if _, isOS := b.fs.(*afero.OsFs); isOS {
		evaluated, err := filepath.EvalSymlinks(root)
		if err != nil {
			log.WithError(err).WithField("root", root).Warn("unable to make a canonical path")
			return root
		}
		resolved = evaluated
	}
	if ok, _ := afero.DirExists(b.fs, resolved); !ok {
		log.WithField("root", resolved).Error("system data directory does not exist")
	}
	return resolved
}

// resolveSubdirs resolves, publishes and creates the directory of every role.
func (b *Builder) resolveSubdirs(chain *Chain, opts Options, cfg *Config) error {
	for _, rs := range overridableRoles {
		key := opts.WebappName + "." + rs.keySegment + KeySuffix
		dir, ok := chain.Lookup(key, opts.NodeID)
		if !ok {
			dir = filepath.Join(cfg.systemDataDir, rs.relative)
		} else if !filepath.IsAbs(dir) {
			log.WithFields(logger.Fields{
				"at":     "(Builder) resolveSubdirs",
				"key":    key,
				"dir":    dir,
				"reason": "relative path, use an absolute path instead",
			}).Warn("relative directory override")
		}
		if err := b.createDir(rs.role, dir); err != nil {
			return err
		}
		cfg.dirs[rs.role] = dir
		if rs.handlerKey != "" {
			opts.Handler.SetValue(rs.handlerKey, dir)
		}
		log.WithFields(logger.Fields{"key": key, "dir": dir}).Info("directory resolved")
	}

	htmlCache := filepath.Join(cfg.dirs[RoleResources], "htmlcache")
	if err := b.createDir(RoleHTMLCache, htmlCache); err != nil {
		return err
	}
	cfg.dirs[RoleHTMLCache] = htmlCache
	opts.Handler.SetValue(HTMLCacheDirKey, htmlCache)
	return nil
}

func (b *Builder) createDir(role Role, dir string) error {
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":   "(Builder) createDir",
			"role": string(role),
			"dir":  dir,
		}).Error("cannot create directory")
		return &SubdirCreateError{Role: role, Path: dir, Err: err}
	}
	return nil
}
