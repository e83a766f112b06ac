package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	_ "github.com/nerrad567/knx-ga-studio/migrations"

	"github.com/nerrad567/knx-ga-studio/internal/api"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/config"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/database"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/influxdb"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/logging"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/mqtt"
	"github.com/nerrad567/knx-ga-studio/internal/session"
	"github.com/nerrad567/knx-ga-studio/internal/studio"
)

// serveFlags are the command-line overrides of serve.
type serveFlags struct {
	host      string
	port      int
	noBrowser bool
	uiDir     string
}

func newServeCmd(opts *options) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web editor",
		Long:  "Serve the web editor and its JSON API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.API.Host = flags.host
			}
			if cmd.Flags().Changed("port") {
				cfg.API.Port = flags.port
			}
			return serve(cmd.Context(), cfg, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "127.0.0.1", "bind host")
	cmd.Flags().IntVar(&flags.port, "port", 8765, "bind port")
	cmd.Flags().BoolVar(&flags.noBrowser, "no-browser", false, "do not open a web browser")
	cmd.Flags().StringVar(&flags.uiDir, "ui-dir", "", "serve the editor from this directory instead of the embedded copy")

	return cmd
}

// serve wires the dependencies, starts the HTTP server and blocks until
// ctx is cancelled.
//
// Parameters:
//   - ctx: Cancelled on shutdown signals
//   - cfg: Validated configuration (flag overrides applied)
//   - flags: serve-only options
//   - out: Where the listening URL is printed
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func serve(ctx context.Context, cfg *config.Config, flags *serveFlags, out io.Writer) error {
	if cfg.API.Port < 0 || cfg.API.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.API.Port)
	}
	// --host is applied after Load validated the file, so check again.
	if err := cfg.API.CheckAuth(); err != nil {
		return err
	}

	log := logging.New(cfg.Logging, version)
	log.Info("starting gastudio",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	conv, err := cfg.Convention.Build()
	if err != nil {
		return fmt.Errorf("building convention: %w", err)
	}

	checks := map[string]api.HealthChecker{}
	deps := studio.Deps{Convention: conv, Logger: log.With("component", "studio")}

	// Connect to MQTT broker (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(ctx, cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.With("component", "mqtt"))
		deps.Publisher = mqttClient
		checks["mqtt"] = mqttClient
		log.Info("MQTT connected",
			"broker", net.JoinHostPort(cfg.MQTT.Broker.Host, fmt.Sprint(cfg.MQTT.Broker.Port)),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(ctx, cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		deps.Metrics = influxClient
		checks["influxdb"] = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	svc, err := studio.New(deps)
	if err != nil {
		return err
	}

	store, closeStore, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	if hc, ok := store.(api.HealthChecker); ok {
		checks["database"] = hc
	}

	srv, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log.With("component", "api"),
		Studio:     svc,
		Store:      store,
		Version:    version,
		SessionTTL: cfg.GetSessionTTL(),
		CacheSize:  cfg.Sessions.CacheSize,
		Checks:     checks,
		UIDir:      flags.uiDir,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}

	url := browserURL(srv.Addr())
	if cfg.API.Auth.Enabled {
		log.Info("api requires a bearer token", "host", cfg.API.Host, "token_ttl", cfg.API.Auth.TokenTTL())
	}
	fmt.Fprintf(out, "gastudio running at: %s\n", url)
	if !flags.noBrowser {
		if openErr := openBrowser(url); openErr != nil {
			log.Warn("opening browser failed", "error", openErr)
		}
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		session.RunJanitor(gctx, store, cfg.GetCleanupInterval(), log.With("component", "sessions"))
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, cleaning up")
		return srv.Close()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("gastudio stopped")
	return nil
}

// dbStore adapts the SQLite session store so /api/health reports the
// database behind it.
type dbStore struct {
	*session.SQLiteStore
	db *database.DB
}

func (s dbStore) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// openSessionStore builds the configured session backend. The returned
// func releases it.
func openSessionStore(ctx context.Context, cfg *config.Config, log *logging.Logger) (session.Store, func(), error) {
	if cfg.Sessions.Backend != config.SessionBackendSQLite {
		log.Info("sessions kept in memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("sessions stored in database", "path", db.Path())

	closeDB := func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}
	return dbStore{SQLiteStore: session.NewSQLiteStore(db.DB), db: db}, closeDB, nil
}

// openDatabase opens the SQLite file named by the configuration.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// isWildcardHost reports whether host binds every interface.
func isWildcardHost(host string) bool {
	return host == "" || host == "0.0.0.0" || host == "::"
}

// browserURL turns a listener address into a URL a local browser can
// open. Wildcard binds are reached through the loopback address.
func browserURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if isWildcardHost(host) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// openBrowser asks the desktop to open url.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // reap the launcher, its status is irrelevant
	return nil
}
