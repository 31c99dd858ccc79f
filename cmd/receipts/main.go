package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"frontdesk/internal/adapters/observability"
	"frontdesk/internal/adapters/pdf"
	"frontdesk/internal/shared"
	sqliterepo "frontdesk/internal/storage/sqlite"
)

// Regenerates the receipt PDF for every bill in the ledger. Rendering is
// deterministic, so re-running after a receipt directory loss (or a
// letterhead change) rebuilds the full set.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("db", cfg.DBPath).
		Str("dir", cfg.ReceiptDir).
		Int("workers", cfg.Workers).
		Msg("receipt regeneration starting")

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_fk=1")
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := sqliterepo.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	repo := sqliterepo.New(db)
	gen := pdf.NewGenerator(cfg.ReceiptDir, pdf.Letterhead{
		Name:    cfg.HotelName,
		Address: cfg.HotelAddress,
		GSTIN:   cfg.HotelGSTIN,
		Phone:   cfg.HotelPhone,
	})

	bills, err := repo.ListBills(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list bills failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, b := range bills {
		b := b

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := gen.Render(b); err != nil {
				log.Warn().Str("bill_no", b.BillNo).Err(err).Msg("render failed")
				return
			}
			log.Info().Str("bill_no", b.BillNo).Msg("render ok")
		}()
	}

	wg.Wait()
	log.Info().Int("bills", len(bills)).Msg("receipt regeneration completed")
}
