package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"japan-address-api/internal/config"
	"japan-address-api/internal/mapper"
	"japan-address-api/internal/models"
	"japan-address-api/internal/parser"
	"japan-address-api/internal/repository"
	"japan-address-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	configDir := flag.String("config", "configs", "Directory containing app.env")
	batchSize := flag.Int("batch-size", 0, "Records per batch (defaults to IMPORT_BATCH_SIZE)")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	cfg.SetupLogger()

	if *batchSize <= 0 {
		*batchSize = cfg.ImportBatchSize
	}

	log.Info().Str("file", *file).Msg("starting import")

	records, err := readRecords(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read records")
	}

	log.Info().Int("records", len(records)).Msg("parsed file")

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate schema")
	}

	began := time.Now()
	persister := service.NewBatchPersister(repo, *batchSize)
	saved, err := persister.Persist(ctx, records, func(p service.Progress) {
		log.Info().
			Int("batch", p.Batch).
			Int("processed", p.Processed).
			Int("written", p.Written).
			Int("total", p.Total).
			Msg("progress")
	})
	if err != nil {
		log.Fatal().Err(err).Int("saved", saved).Msg("import failed")
	}

	total, err := repo.CountAddresses(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot verify import")
	}

	fmt.Printf("Imported %d new of %d records in %s (%d addresses stored)\n",
		saved, len(records), time.Since(began).Round(time.Millisecond), total)
}

func readRecords(path string) ([]models.AddressRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	raws, err := parser.Parse(f, parser.Options{})
	if err != nil {
		return nil, err
	}

	return mapper.MapRecords(raws)
}
