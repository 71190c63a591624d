package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm/logger"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/config"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/repository/memory"
	"github.com/saqibam92/BlashBerry-nextjs/repository/postgres"
	"github.com/saqibam92/BlashBerry-nextjs/routes"
	"github.com/saqibam92/BlashBerry-nextjs/seed"
	"github.com/saqibam92/BlashBerry-nextjs/services"
	"github.com/saqibam92/BlashBerry-nextjs/uploads"
)

func main() {
	app := &cli.App{
		Name:  "blashberry",
		Usage: "BlashBerry storefront API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "store", Value: "postgres", Usage: "postgres or memory"},
					&cli.BoolFlag{Name: "seed", Usage: "seed demo data before serving"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "insert the demo catalog and accounts",
				Action: seedDatabase,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("exit")
	}
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return cfg, nil
}

func openStore(cfg *config.Config, kind string) (models.Store, error) {
	switch kind {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New().Repositories(), nil
	case "postgres":
		lvl := logger.Warn
		if zerolog.GlobalLevel() <= zerolog.DebugLevel {
			lvl = logger.Info
		}
		db, err := postgres.Open(cfg.DSN(), lvl)
		if err != nil {
			return models.Store{}, err
		}
		if err := postgres.Migrate(db); err != nil {
			return models.Store{}, err
		}
		return postgres.NewStore(db), nil
	default:
		return models.Store{}, errors.Errorf("unknown store %q", kind)
	}
}

func buildServices(ctx context.Context, cfg *config.Config, store models.Store) *services.Services {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	var google auth.GoogleVerifier
	if cfg.FirebaseProjectID != "" {
		v, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON)
		if err != nil {
			log.Error().Err(err).Msg("google sign-in disabled")
		} else {
			google = v
		}
	}

	return services.New(store, tokens, google, services.Options{
		StrictTransitions: cfg.StrictTransitions,
		IdempotencyWindow: cfg.IdempotencyWindow,
		MasterAdminEmail:  cfg.MasterAdminEmail,
	})
}

func serve(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, c.String("store"))
	if err != nil {
		return err
	}
	svc := buildServices(ctx, cfg, store)
	if c.Bool("seed") {
		if err := seed.Run(ctx, svc, cfg.MasterAdminEmail); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return errors.Wrap(err, "create upload dir")
	}
	router := routes.NewRouter(cfg, routes.Deps{
		Services: svc,
		Auth:     svc.Auth,
		Uploads:  uploads.NewStore(cfg.UploadDir),
	})

	go uploads.BackupSchedule{
		Src:       cfg.UploadDir,
		Dest:      cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      cfg.BackupHour,
	}.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(*cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if _, err := openStore(cfg, "postgres"); err != nil {
		return err
	}
	log.Info().Msg("schema up to date")
	return nil
}

func seedDatabase(c *cli.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	store, err := openStore(cfg, "postgres")
	if err != nil {
		return err
	}
	svc := buildServices(c.Context, cfg, store)
	return seed.Run(c.Context, svc, cfg.MasterAdminEmail)
}
