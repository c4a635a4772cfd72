package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/distribution-console/internal/application/auth"
	"github.com/jhoicas/distribution-console/internal/application/datasync"
	"github.com/jhoicas/distribution-console/internal/application/lifecycle"
	"github.com/jhoicas/distribution-console/internal/application/resources"
	"github.com/jhoicas/distribution-console/internal/application/session"
	"github.com/jhoicas/distribution-console/internal/application/users"
	"github.com/jhoicas/distribution-console/internal/infrastructure/distribution"
	"github.com/jhoicas/distribution-console/internal/infrastructure/metrics"
	"github.com/jhoicas/distribution-console/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/distribution-console/internal/interfaces/http"
	"github.com/jhoicas/distribution-console/internal/interfaces/ws"
	"github.com/jhoicas/distribution-console/pkg/config"
	"github.com/jhoicas/distribution-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Dur("sync_interval", cfg.Sync.Interval()).
		Msg("iniciando consola")

	tokens := storage.NewTokenFile(cfg.API.TokenFile)
	sess := session.New(tokens, log)
	if err := sess.Load(); err != nil {
		log.Warn().Err(err).Str("path", tokens.Path()).Msg("no se pudo leer la credencial guardada")
	}
	log.Info().Str("role", string(sess.Role())).Bool("authenticated", sess.Authenticated()).Msg("sesión cargada")

	client := distribution.NewClient(cfg.API.BaseURL, sess, log)
	collector := metrics.NewCollector()

	sched := datasync.NewScheduler(client, cfg.Sync.Interval(), log, collector)
	lifecycleCtl := lifecycle.NewController(client, sess, sched, sched, collector, log)
	gateway := resources.NewGateway(client, sess, sched, collector, log)
	authUC := auth.NewAuthUseCase(client, sess, log)
	userUC := users.NewUserUseCase(client, sess, collector, log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run(ctx)
	sched.OnSync(func(s datasync.Snapshot) {
		hub.Publish(httpRouter.NewSnapshotResponse(s, sess.Capabilities()))
	})

	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("arranque de la sincronización")
	}

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribution Console",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:   sess,
		AuthUC:    authUC,
		UserUC:    userUC,
		Scheduler: sched,
		Lifecycle: lifecycleCtl,
		Gateway:   gateway,
		Stats:     client,
		Hub:       hub,
		Metrics:   collector.Handler(),
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo sincronización...")
	sched.Stop()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
