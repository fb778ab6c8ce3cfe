package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/bankfile-service/internal/adapters/postgres"
	"github.com/kevin07696/bankfile-service/internal/config"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/domain/ports"
	"github.com/kevin07696/bankfile-service/internal/formats"
	"github.com/kevin07696/bankfile-service/internal/services/export"
	"github.com/kevin07696/bankfile-service/internal/testutil"
	"github.com/kevin07696/bankfile-service/pkg/timeutil"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return timeutil.Now() }

func main() {
	var (
		format = flag.String("format", "", "Output format: nacha, cpa005, aba, sepa, nz_anz, nz_bnz, nz_asb, nz_westpac")
		in     = flag.String("in", "", "Path to the batch JSON document")
		outDir = flag.String("out", ".", "Directory the generated file is written to")
		dbURL  = flag.String("db", "", "Postgres URL for the sequence store; in-memory counters when empty")
		dryRun = flag.Bool("check", false, "Run preflight only, write nothing")
	)
	flag.Parse()

	if *format == "" || *in == "" {
		fmt.Println("Usage: bankfile -format=<format> -in=<batch.json> [-out=<dir>] [-db=<url>] [-check]")
		os.Exit(1)
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("load config: ", err)
	}
	logger, err := buildLogger(cfg.Logger)
	if err != nil {
		log.Fatal("build logger: ", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var sequences ports.SequencePort
	switch {
	case *dbURL != "":
		pool, err := pgxpool.New(ctx, *dbURL)
		if err != nil {
			logger.Fatal("connect to sequence store", zap.Error(err))
		}
		defer pool.Close()
		sequences = postgres.NewSequenceRepository(pool)
	case os.Getenv("DB_HOST") != "":
		pc, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
		if err != nil {
			logger.Fatal("parse database config", zap.Error(err))
		}
		pc.MaxConns = cfg.Database.MaxConns
		pc.MinConns = cfg.Database.MinConns
		pool, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			logger.Fatal("connect to sequence store", zap.Error(err))
		}
		defer pool.Close()
		sequences = postgres.NewSequenceRepository(pool)
	default:
		sequences = testutil.NewInMemorySequences()
	}

	batch, err := readBatch(*in)
	if err != nil {
		logger.Fatal("read batch", zap.String("path", *in), zap.Error(err))
	}

	f := formats.Format(*format)
	if *dryRun {
		if err := formats.Preflight(f, batch); err != nil {
			logger.Error("preflight failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("preflight passed",
			zap.String("format", *format),
			zap.Int("payments", len(batch.Payments)))
		return
	}

	svc := export.NewService(sequences, systemClock{}, logger)
	result, err := svc.Export(ctx, f, batch)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}

	path := filepath.Join(*outDir, result.Filename)
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		logger.Fatal("write file", zap.String("path", path), zap.Error(err))
	}
	logger.Info("file written", zap.String("path", path))
}

func readBatch(path string) (*models.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch models.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode batch document: %w", err)
	}
	return &batch, nil
}

func buildLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if cfg.Development {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(level)
		return c.Build()
	}
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	return c.Build()
}
