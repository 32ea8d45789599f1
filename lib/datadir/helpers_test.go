package datadir

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// faultFs fails selected operations on paths below a prefix.
type faultFs struct {
	afero.Fs
	noMkdir  string
	noCreate string
	noStat   string
}

func under(path, prefix string) bool {
	return prefix != "" && (path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)))
}

func (f faultFs) MkdirAll(path string, perm os.FileMode) error {
	if under(path, f.noMkdir) {
		return &os.PathError{Op: "mkdir", Path: path, Err: syscall.EACCES}
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f faultFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&os.O_CREATE != 0 && under(filepath.Dir(name), f.noCreate) {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EACCES}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f faultFs) Stat(name string) (os.FileInfo, error) {
	if under(name, f.noStat) {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}
	return f.Fs.Stat(name)
}

// noEnv is an environment source with nothing set.
var noEnv = EnvSource{LookupEnv: func(string) (string, bool) { return "", false }}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// bundleWebapp lays out the content a webapp ships with below webappDir.
func bundleWebapp(t *testing.T, fs afero.Fs, webappDir string) {
	t.Helper()
	bundled := DefaultDataDir(webappDir)
	writeFile(t, fs, filepath.Join(bundled, "config", "codelist", "local", "thesauri", "theme", "inspire.rdf"), "<rdf/>")
	writeFile(t, fs, filepath.Join(bundled, "config", "schema_plugins", "iso19139", "schema.xsd"), "<xs/>")
	writeFile(t, fs, filepath.Join(bundled, "config", "schema_plugins", "dublin-core", "schema.xsd"), "<xs/>")
	writeFile(t, fs, filepath.Join(webappDir, "WEB-INF", SchemaPluginsCatalog), "<catalog/>")
}
