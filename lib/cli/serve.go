package cli

import (
	"context"

	"github.com/go-i2p/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/titellus/geonetwork-pnf/lib/api"
	"github.com/titellus/geonetwork-pnf/lib/config"
	"github.com/titellus/geonetwork-pnf/lib/htmlcache"
	"github.com/titellus/geonetwork-pnf/lib/migration"
	"github.com/titellus/geonetwork-pnf/lib/settings"
	"github.com/titellus/geonetwork-pnf/lib/util/signals"
)

func newServeCmd(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Resolve the data directory and serve the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), ctx)
		},
	}
	cmd.Flags().String("address", config.DefaultServerAddress, "admin API listen address")
	cmd.Flags().Bool("dev-mode", false, "development mode, disables the html cache")
	bind := map[string]string{
		"server.address":  "address",
		"system.dev_mode": "dev-mode",
	}
	for key, flag := range bind {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			log.WithError(err).WithField("flag", flag).Warn("cannot bind flag")
		}
	}
	return cmd
}

func serve(parent context.Context, app *appContext) error {
	if parent == nil {
		parent = context.Background()
	}
	fs := afero.NewOsFs()
	n, err := resolveNode(fs, app.properties)
	if err != nil {
		return err
	}

	dbPath := n.app.SettingsDatabasePath(n.layout.ConfigDir())
	store, err := settings.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.DefineAll(settings.Defaults()); err != nil {
		return err
	}

	cache := htmlcache.NewStore(fs, n.layout.HTMLCacheDir(), htmlcache.Policy{
		SystemInfo: htmlcache.StaticSystemInfo{DevMode: n.app.DevMode},
	})

	router := api.NewRouter(api.Deps{
		DataDir:    n.layout,
		Settings:   store,
		Migrations: migration.NewTrigger(migration.Builtin(), store),
		Cache:      cache,
		Auth:       api.NewAuthManager(n.app.AdminTokenHash),
	})
	server := api.NewServer(n.app.ServerAddress, router)
	if err := server.Start(); err != nil {
		return err
	}

	log.WithFields(logger.Fields{
		"at":       "serve",
		"address":  server.Addr(),
		"root":     n.layout.SystemDataDir(),
		"settings": dbPath,
	}).Info("catalogue node ready")

	dispatcher := signals.New()
	dispatcher.OnReload(func() {
		log.WithField("at", "serve").Info("reload requested, restart the process to apply configuration changes")
	})
	dispatcher.OnInterrupt(server.Stop)
	dispatcher.Wait(parent)
	return nil
}
