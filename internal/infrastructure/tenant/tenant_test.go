package tenant

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

func writeRegistry(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, registryFileName), []byte(body), 0o644))
}

const twoTenants = `{"tenants": {
	"salon": {"domains": ["salonerosa.it"], "status": "inactive"},
	"gym": {"domains": ["*"], "status": "disabled"}
}}`

func TestLoadTenantConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveTenantConfig(dir, &Config{TenantID: "salon", JWTSecret: "s3cret", ResendAPIKey: "re_123"}))

	cfg, err := LoadTenantConfig(dir, "salon")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "re_123", cfg.ResendAPIKey)
	assert.Equal(t, filepath.Join(dir, "salon", sqliteFileName), cfg.SQLitePath)
	assert.False(t, cfg.UseTurso())

	missing, err := LoadTenantConfig(dir, "fresh")
	require.NoError(t, err)
	assert.Empty(t, missing.JWTSecret)

	_, err = LoadTenantConfig(dir, "../etc")
	assert.Error(t, err)
}

func TestTursoRequiresAllFields(t *testing.T) {
	assert.False(t, (&Config{TursoEnabled: true, TursoDatabase: "libsql://x"}).UseTurso())
	assert.True(t, (&Config{TursoEnabled: true, TursoDatabase: "libsql://x", TursoToken: "t"}).UseTurso())
}

func TestRegistryDefaultsAndRegistration(t *testing.T) {
	dir := t.TempDir()
	registry, err := LoadTenantRegistry(dir)
	require.NoError(t, err)
	assert.Contains(t, registry.Tenants, DefaultTenantID)

	require.NoError(t, RegisterTenant(dir, "salon", []string{"salonerosa.it"}))
	registry, err = LoadTenantRegistry(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"salonerosa.it"}, registry.Tenants["salon"].Domains)
	assert.Equal(t, "salon", registry.Tenants["salon"].TenantID)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, twoTenants)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bakery"), 0o755))

	d, err := NewDetector(dir, true, logging.NewNopLogger())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		host   string
		want   string
		ok     bool
	}{
		{name: "header", header: "salon", want: "salon", ok: true},
		{name: "query", query: "gym", want: "gym", ok: true},
		{name: "domain", host: "SaloneRosa.it:8080", want: "salon", ok: true},
		{name: "subdomain", host: "gym.sitecraft.local", want: "gym", ok: true},
		{name: "unknown header", header: "nobody", ok: false},
		{name: "auto registers from directory", header: "bakery", want: "bakery", ok: true},
		{name: "no hint", host: "localhost", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Detect(tt.header, tt.query, tt.host)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnknownTenant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	single, err := NewDetector(dir, false, logging.NewNopLogger())
	require.NoError(t, err)
	got, err := single.Detect("salon", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTenantID, got)
}

func TestManagerCreatesContextAndSchema(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, twoTenants)
	logger := logging.NewNopLogger()

	m, err := NewManager(dir, true, manager.NewManager(time.Hour, logger), logger)
	require.NoError(t, err)
	defer m.Close()

	ctx, err := m.GetContextByID("salon")
	require.NoError(t, err)
	assert.True(t, ctx.IsActive())
	assert.Equal(t, StatusActive, m.GetDetector().GetTenantStatus("salon"))

	same, err := m.GetContextByID("salon")
	require.NoError(t, err)
	assert.Same(t, ctx, same)

	_, err = ctx.SiteRepo().Load("salon")
	assert.ErrorIs(t, err, repositories.ErrSiteNotFound)
	require.NoError(t, ctx.SiteRepo().Save("salon", &website.Site{Organization: website.Organization{Name: "Salone"}}))

	_, err = m.GetContextByID("gym")
	assert.Error(t, err)
}

func TestPreActivateAllTenants(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, twoTenants)
	logger := logging.NewNopLogger()

	m, err := NewManager(dir, true, manager.NewManager(time.Hour, logger), logger)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.PreActivateAllTenants(context.Background()))
	assert.Equal(t, StatusActive, m.GetDetector().GetTenantStatus("salon"))
	assert.Equal(t, StatusDisabled, m.GetDetector().GetTenantStatus("gym"))
}

func TestWatchRegistryReloads(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	writeRegistry(t, dir, `{"tenants": {"salon": {"status": "inactive"}}}`)
	d, err := NewDetector(dir, true, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- d.WatchRegistry(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)
	writeRegistry(t, dir, `{"tenants": {"salon": {"status": "inactive"}, "gym": {"status": "inactive"}}}`)

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("registry change not observed")
	}
	assert.ElementsMatch(t, []string{"salon", "gym"}, d.TenantIDs())

	cancel()
	require.NoError(t, <-done)
}
