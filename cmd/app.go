package cmd

import (
	"context"
	"fmt"

	"record-sync/core/checkpoint"
	"record-sync/core/config"
	"record-sync/core/database"
	"record-sync/core/logger"
	"record-sync/core/reconcile"
	"record-sync/core/storage"
	"record-sync/feature/feed"
	"record-sync/feature/reports"
	"record-sync/feature/repository"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the wired collaborators shared by the commands.
type services struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
	checkpoint *checkpoint.FileLog
	mappings   *repository.MappingStore
	archive    *reports.Archive
	engine     *reconcile.Engine
}

// loadBase loads the configuration and builds the logger.
func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newCheckpoint opens the checkpoint log on the OS file system.
func newCheckpoint(cfg *config.Config) *checkpoint.FileLog {
	return checkpoint.NewFileLog(afero.NewOsFs(), cfg.Checkpoint.Path)
}

// newArchive connects to object storage and prepares the report bucket.
func newArchive(ctx context.Context, cfg *config.Config, l *zap.Logger) (*reports.Archive, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	archive := reports.NewArchive(client, cfg.Storage.Bucket, cfg.Reports.Prefix, l)

	ctx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout())
	defer cancel()
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

// buildRuntime wires the engine with its feed, destination, checkpoint and reporters.
// lookback overrides sync.lookback_days when positive.
func buildRuntime(ctx context.Context, lookback int) (*services, error) {
	cfg, l, err := loadBase()
	if err != nil {
		return nil, err
	}
	if lookback > 0 {
		cfg.Sync.LookbackDays = lookback
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	mappings := repository.NewMappingStore(db)
	if err := mappings.Migrate(ctx); err != nil {
		return nil, err
	}

	catalog := feed.NewClient(cfg.Source)
	applier := repository.NewApplier(
		mappings,
		repository.NewClient(cfg.Destination),
		catalog,
		repository.EnvelopeTransformer{},
		l,
	)

	rt := &services{
		cfg:        cfg,
		logger:     l,
		db:         db,
		checkpoint: newCheckpoint(cfg),
		mappings:   mappings,
	}

	reporters := reconcile.MultiReporter{reconcile.NewLogReporter(l)}
	if cfg.Reports.Enabled {
		archive, err := newArchive(ctx, cfg, l)
		if err != nil {
			// A missing archive does not block the run
			l.Warn("Report archive unavailable", zap.Error(err))
		} else {
			rt.archive = archive
			reporters = append(reporters, archive)
		}
	}

	engine, err := reconcile.NewEngine(reconcile.Spec{
		Feed:         catalog,
		Resolver:     mappings,
		Applier:      applier,
		Checkpoint:   rt.checkpoint,
		Reporter:     reporters,
		RecordKind:   cfg.Sync.RecordKind,
		LookbackDays: cfg.Sync.LookbackDays,
	}, l)
	if err != nil {
		return nil, err
	}
	rt.engine = engine
	return rt, nil
}

// Run executes one engine run and then bounds the checkpoint log.
func (rt *services) Run(ctx context.Context) (*reconcile.RunSummary, error) {
	summary, err := rt.engine.Run(ctx)
	if err == nil {
		rt.pruneCheckpoint(ctx)
	}
	return summary, err
}

// MissingDates lists the dates of the lookback window not yet checkpointed.
func (rt *services) MissingDates(ctx context.Context) ([]string, error) {
	return rt.engine.MissingDates(ctx)
}

// pruneCheckpoint applies checkpoint.max_lines after a run.
func (rt *services) pruneCheckpoint(ctx context.Context) {
	if rt.cfg.Checkpoint.MaxLines <= 0 {
		return
	}
	before, after, err := rt.checkpoint.Prune(ctx, rt.cfg.Checkpoint.MaxLines)
	if err != nil {
		rt.logger.Warn("Failed to prune checkpoint", zap.Error(err))
		return
	}
	if before != after {
		rt.logger.Info("Pruned checkpoint", zap.Int("before", before), zap.Int("after", after))
	}
}

func (rt *services) close() {
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = rt.logger.Sync()
}

