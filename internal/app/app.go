package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/techverse/internal/data/db"
	"github.com/yungbote/techverse/internal/data/graph"
	"github.com/yungbote/techverse/internal/datasets"
	apphttp "github.com/yungbote/techverse/internal/http"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/platform/logger"
	"github.com/yungbote/techverse/internal/realtime"
)

// Version is stamped at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Clients  Clients
	SSEHub   *realtime.SSEHub
	Server   *apphttp.Server

	dbService    *db.Service
	source       datasets.Source
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func NewLogger(cfg Config) (*logger.Logger, error) {
	mode := cfg.LogMode
	if mode == "" {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenDatabase connects to DATABASE_URL and brings the schema up to date.
func OpenDatabase(log *logger.Logger, cfg Config) (*db.Service, error) {
	svc, err := db.Open(log, db.Options{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	return svc, nil
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	cfg.Otel.Version = Version
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.NewMetrics()

	dbService, err := OpenDatabase(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := dbService.DB()

	source, loc, err := resolveDatasetSource(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		closeSource(source)
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	ssehub := realtime.NewSSEHub(log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, clients, ssehub, metrics, source)
	handlerset := wireHandlers(log, serviceset, ssehub, metrics, dbService.Ping)

	dataDir := ""
	if loc.Kind == "fs" {
		dataDir = loc.Path
	}
	routerCfg, err := wireRouter(log, cfg, handlerset, metrics, dataDir)
	if err != nil {
		clients.Close()
		closeSource(source)
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		SSEHub:       ssehub,
		Server:       apphttp.NewServer(routerCfg),
		dbService:    dbService,
		source:       source,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background work: the bus forwarder, the dataset load
// and the development seed. It returns once the forwarder is subscribed.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Clients.SSEBus != nil {
		if err := a.Clients.SSEBus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
			return fmt.Errorf("start SSE forwarder: %w", err)
		}
	}

	if a.Cfg.SeedOnStart() {
		a.Log.Info("Development environment detected, seeding empty database", "app_env", a.Cfg.Env)
		if n, err := a.Services.Items.SeedIfEmpty(ctx); err != nil {
			a.Log.Error("Seed on start failed", "error", err)
		} else {
			a.Log.Info("Seed on start finished", "inserted", n)
		}
	}

	go a.loadDataset(ctx)
	return nil
}

func (a *App) loadDataset(ctx context.Context) {
	ds := a.Services.TechGraph.Reload(ctx)
	if a.Clients.Neo4j == nil || ds.IsEmpty() {
		return
	}
	if _, err := graph.UpsertCatalogGraph(ctx, a.Clients.Neo4j, a.Log, ds); err != nil {
		a.Log.Warn("Mirror catalog to neo4j failed", "error", err)
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	return a.Server.Run(ctx, a.Cfg.Address(), a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	closeSource(a.source)
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
