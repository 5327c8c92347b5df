package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
	dbpkg "github.com/IsacFSC/nutri-mobile-sub001/internal/db"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	infraRepo "github.com/IsacFSC/nutri-mobile-sub001/internal/infra/repository"
	ucPatient "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

// backfill-protocols numbers patients created before protocol numbers existed.
func main() {
	batch := flag.Int("batch", 100, "patients loaded per query")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel).With("cmd", "backfill-protocols")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	locker, rdb, err := lock.FromConfig(ctx, cfg)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Warn("REDIS_ADDR not set, stop the API before backfilling")
	}

	repo := infraRepo.NewPatientGormRepository(db)
	assigner := ucPatient.NewProtocolAssigner(repo, locker, nil, log, cfg.ProtocolPrefix, cfg.ProtocolMaxRetries)
	backfill := ucPatient.NewBackfillProtocols(repo, assigner, nil, log)

	start := time.Now()
	n, err := backfill.Execute(ctx, *batch)
	if err != nil {
		log.Error("backfill interrupted", "assigned", n, "error", err)
		os.Exit(1)
	}

	log.Info("backfill complete", "assigned", n, "took", time.Since(start).String())
}
