package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/titellus/geonetwork-pnf/lib/datadir"
	"github.com/titellus/geonetwork-pnf/lib/htmlcache"
	"github.com/titellus/geonetwork-pnf/lib/migration"
	"github.com/titellus/geonetwork-pnf/lib/settings"
)

const adminToken = "s3cret-admin-token"

type fixture struct {
	router http.Handler
	store  *settings.Store
	cache  *htmlcache.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	cfg, _, err := datadir.NewBuilder(fs).Build(datadir.Options{
		WebappName:  "geonetwork",
		WebappDir:   "/srv/app",
		NodeID:      "srv",
		DefaultNode: true,
		Env:         datadir.EnvSource{LookupEnv: func(string) (string, bool) { return "", false }},
	})
	require.NoError(t, err)

	store, err := settings.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.DefineAll(settings.Defaults()))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	cache := htmlcache.NewStore(fs, cfg.HTMLCacheDir(), htmlcache.Policy{})
	return &fixture{
		router: NewRouter(Deps{
			DataDir:    cfg,
			Settings:   store,
			Migrations: migration.NewTrigger(migration.Builtin(), store),
			Cache:      cache,
			Auth:       NewAuthManager(string(hash)),
		}),
		store: store,
		cache: cache,
	}
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "srv", resp.Node)
}

func TestDataDir(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/datadir", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var s datadir.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, "/srv/app/WEB-INF/data", s.SystemDataDir)
	assert.Equal(t, "/srv/app/WEB-INF/data/index", s.Directories[string(datadir.RoleIndex)])
}

func TestSettingsTreeHidesInternalFromGuests(t *testing.T) {
	f := newFixture(t)

	var guest settings.Node
	rec := f.do(http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&guest))

	var admin settings.Node
	rec = f.do(http.MethodGet, "/api/settings", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&admin))

	assert.NotContains(t, childNames(childNamed(&guest, "system")), "proxy")
	assert.Contains(t, childNames(childNamed(&admin, "system")), "proxy")
	assert.Contains(t, childNames(childNamed(&guest, "system")), "site")
}

func childNamed(n *settings.Node, name string) *settings.Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return &settings.Node{}
}

func childNames(n *settings.Node) []string {
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Name)
	}
	return out
}

func TestMigrationStepStatuses(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"guest", "/api/tools/migration/steps/" + migration.SiteIdentifierStepName, "", http.StatusForbidden},
		{"bad token", "/api/tools/migration/steps/" + migration.SiteIdentifierStepName, "wrong", http.StatusUnauthorized},
		{"unknown", "/api/tools/migration/steps/v999.Missing", adminToken, http.StatusBadRequest},
		{"created", "/api/tools/migration/steps/" + migration.SiteIdentifierStepName, adminToken, http.StatusCreated},
		{"versioned", "/api/0.1/tools/migration/steps/" + migration.SettingsPositionStepName, adminToken, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPut, tc.path, tc.token)
			body, _ := io.ReadAll(rec.Body)
			assert.Equal(t, tc.status, rec.Code, string(body))
		})
	}
	assert.NotEmpty(t, f.store.SiteID())
}

func TestListSteps(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/tools/migration/steps", "").Code)

	rec := f.do(http.MethodGet, "/api/tools/migration/steps", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&names))
	assert.Equal(t, []string{migration.SettingsPositionStepName, migration.SiteIdentifierStepName}, names)
}

func TestPurgeCache(t *testing.T) {
	f := newFixture(t)
	_, err := f.cache.Put(htmlcache.Key{MetadataID: 7, Lang: "eng", Formatter: "full"}, []byte("<p/>"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, "/api/htmlcache", "").Code)

	rec := f.do(http.MethodDelete, "/api/htmlcache", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PurgeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Removed)
}

func TestFailedAuthenticationIsRateLimited(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/settings", "guess").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodGet, "/api/settings", "guess").Code)
}

func TestAdminTokenWorksWhileFailuresAreThrottled(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)
	am := NewAuthManager(string(hash))

	for i := 0; i < 5; i++ {
		_, err := am.Authenticate("wrong")
		require.ErrorIs(t, err, ErrInvalidToken)
	}
	_, err = am.Authenticate("wrong")
	require.ErrorIs(t, err, ErrRateLimited)

	p, err := am.Authenticate(adminToken)
	require.NoError(t, err)
	assert.Equal(t, migration.ProfileAdministrator, p)
}

func TestEmptyHashDisablesAdmin(t *testing.T) {
	am := NewAuthManager("")
	p, err := am.Authenticate(adminToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, migration.ProfileGuest, p)
}

func TestHashToken(t *testing.T) {
	hash, err := HashToken("token")
	require.NoError(t, err)
	p, err := NewAuthManager(hash).Authenticate("token")
	require.NoError(t, err)
	assert.Equal(t, migration.ProfileAdministrator, p)
}

func TestServerStartStop(t *testing.T) {
	f := newFixture(t)
	s := NewServer("127.0.0.1:0", f.router)
	require.NoError(t, s.Start())
	defer s.Stop()

	resp, err := http.Get("http://" + s.Addr() + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
