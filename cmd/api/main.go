package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	server "frontdesk/internal/adapters/http_server"
	"frontdesk/internal/adapters/observability"
	"frontdesk/internal/adapters/osexec"
	"frontdesk/internal/adapters/pdf"
	redisad "frontdesk/internal/adapters/redis"
	"frontdesk/internal/app"
	"frontdesk/internal/domain"
	"frontdesk/internal/shared"
	sqliterepo "frontdesk/internal/storage/sqlite"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// db
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_fk=1")
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	// one connection: the file is the unit of durability here and a single
	// front desk never needs more
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	ctx := context.Background()
	if err := sqliterepo.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	log.Info().Str("path", cfg.DBPath).Msg("database ready")

	// deps
	repo := sqliterepo.New(db)
	if err := repo.InitRooms(ctx, cfg.RoomNumbers); err != nil {
		log.Fatal().Err(err).Msg("room seeding failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("bill cache enabled")
	}

	receipts := pdf.NewGenerator(cfg.ReceiptDir, pdf.Letterhead{
		Name:    cfg.HotelName,
		Address: cfg.HotelAddress,
		GSTIN:   cfg.HotelGSTIN,
		Phone:   cfg.HotelPhone,
	})

	billing := app.NewBillingService(repo, repo, receipts, osexec.New())
	billing.SetAutoOpen(cfg.AutoOpen)
	billing.OnRoomsChanged(func() {
		log.Debug().Msg("room statuses changed")
	})
	queries := app.NewQueryService(repo, repo, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{B: billing, Q: queries})

	log.Info().Str("addr", cfg.HTTPAddr).Strs("rooms", cfg.RoomNumbers).Msg("front desk API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
