package handler

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesInitialValues(t *testing.T) {
	initial := map[string]string{"geonetwork.dir": "/data/gn"}
	p := New(initial)
	initial["geonetwork.dir"] = "/changed"

	v, ok := p.Value("geonetwork.dir")
	require.True(t, ok)
	assert.Equal(t, "/data/gn", v)
}

func TestSetValueAndSnapshot(t *testing.T) {
	p := New(nil)
	p.SetValue("luceneDir", "/a/index")
	p.SetValue("configDir", "/a/config")

	assert.Equal(t, []string{"configDir", "luceneDir"}, p.Keys())

	snap := p.Snapshot()
	snap["luceneDir"] = "mutated"
	v, _ := p.Value("luceneDir")
	assert.Equal(t, "/a/index", v, "snapshot must not alias the live map")
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, p.Keys())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "geonetwork.lucene.dir: /srv/index\nsrv.geonetwork.dir: /srv/data\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	v, ok := p.Value("geonetwork.lucene.dir")
	assert.True(t, ok)
	assert.Equal(t, "/srv/index", v)
	v, ok = p.Value("srv.geonetwork.dir")
	assert.True(t, ok)
	assert.Equal(t, "/srv/data", v)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	p := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.SetValue("key", "value")
		}()
		go func() {
			defer wg.Done()
			_, _ = p.Value("key")
		}()
	}
	wg.Wait()
	v, ok := p.Value("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}
