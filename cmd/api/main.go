package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "japan-address-api/docs"
	"japan-address-api/internal/config"
	"japan-address-api/internal/handler"
	"japan-address-api/internal/progress"
	"japan-address-api/internal/repository"
	"japan-address-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs --outputTypes go,json --parseInternal

//	@title			Japan Address API
//	@version		1.0
//	@description	Import and browse the Japanese town-section address dataset.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	config.SetupLogger()
	gin.SetMode(config.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db is not reachable")
	}
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate schema")
	}

	// Initialize layers
	tracker := progress.NewTracker()
	persister := service.NewBatchPersister(repo, config.ImportBatchSize)

	importService := service.NewImportService(persister, tracker)
	addressService := service.NewAddressService(repo, config.MaxPageSize)
	statsService := service.NewStatsService(repo)

	r := handler.NewRouter(handler.Handlers{
		Import:    handler.NewImportHandler(importService, config.MaxUploadBytes),
		Addresses: handler.NewAddressHandler(addressService, config.DefaultPageSize),
		Stats:     handler.NewStatsHandler(statsService),
	})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	// Imports cannot be cancelled; let a running one finish before the pool closes.
	if tracker.Snapshot().IsProcessing {
		log.Info().Msg("waiting for running import to finish")
	}
	importService.Wait()
}
