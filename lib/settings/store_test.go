package settings

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.DefineAll(Defaults()))
	return s
}

func TestGetDefaults(t *testing.T) {
	s := openStore(t)

	v, ok := s.Get(KeySiteName)
	require.True(t, ok)
	assert.Equal(t, "My GeoNetwork catalogue", v)
	assert.Equal(t, "My GeoNetwork catalogue", s.SiteName())
	assert.Equal(t, "", s.SiteID())
}

func TestGetUnknownKeyIsAbsent(t *testing.T) {
	s := openStore(t)
	v, ok := s.Get("system/does/not/exist")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetValidatesDataType(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set(KeyServerPort, "8443"))
	n, ok, err := s.GetInt(KeyServerPort)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 8443, n)

	cases := []struct {
		key, value string
	}{
		{KeyServerPort, "eighty"},
		{KeyProxyUse, "maybe"},
		{KeyUIConfig, "{not json"},
	}
	for _, tc := range cases {
		err := s.Set(tc.key, tc.value)
		assert.ErrorIs(t, err, ErrInvalidSettingValue, "%s=%s", tc.key, tc.value)
	}

	v, _ := s.Get(KeyServerPort)
	assert.Equal(t, "8443", v, "rejected values are not stored")
}

func TestSetUnknownKeyRaises(t *testing.T) {
	s := openStore(t)
	assert.ErrorIs(t, s.Set("system/unknown", "x"), ErrUnknownSettingKey)
}

func TestGetBool(t *testing.T) {
	s := openStore(t)
	assert.False(t, s.GetBool(KeyProxyUse, true))
	require.NoError(t, s.Set(KeyProxyUse, "TRUE"))
	assert.True(t, s.GetBool(KeyProxyUse, false))
	assert.True(t, s.GetBool("missing", true))
}

func TestSetValuesIsAtomic(t *testing.T) {
	s := openStore(t)

	err := s.SetValues(map[string]string{
		KeyServerHost: "catalog.example.org",
		KeyServerPort: "not-a-port",
	})
	assert.ErrorIs(t, err, ErrInvalidSettingValue)
	host, _ := s.Get(KeyServerHost)
	assert.Equal(t, "localhost", host)

	require.NoError(t, s.SetValues(map[string]string{
		KeyServerHost: "catalog.example.org",
		KeyServerPort: "443",
	}))
	host, _ = s.Get(KeyServerHost)
	assert.Equal(t, "catalog.example.org", host)
}

func TestDefineKeepsExistingValue(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Set(KeySiteName, "Parc national"))
	require.NoError(t, s.DefineAll(Defaults()))
	assert.Equal(t, "Parc national", s.SiteName())
}

func TestDefineRejectsInvalidDefault(t *testing.T) {
	s := openStore(t)
	err := s.Define(Definition{Name: "system/bad", Value: "x", DataType: TypeInt})
	assert.ErrorIs(t, err, ErrInvalidSettingValue)
}

func TestStorePersistsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.DefineAll(Defaults()))
	require.NoError(t, s.Set(KeySiteID, "b0a5b1e4"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "b0a5b1e4", s.SiteID())
}

func TestConcurrentAccess(t *testing.T) {
	s := openStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.Set(KeyServerHost, "host")
				_, _ = s.Get(KeyServerHost)
			}
		}()
	}
	wg.Wait()
	v, _ := s.Get(KeyServerHost)
	assert.Equal(t, "host", v)
}
