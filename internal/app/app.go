package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/ml-service/internal/catalog"
	config "github.com/DRSN-tech/ml-service/internal/cfg"
	v1Http "github.com/DRSN-tech/ml-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/ml-service/internal/domain"
	"github.com/DRSN-tech/ml-service/internal/infrastructure/builder"
	"github.com/DRSN-tech/ml-service/internal/infrastructure/extractor"
	"github.com/DRSN-tech/ml-service/internal/infrastructure/kafka"
	"github.com/DRSN-tech/ml-service/internal/repository/embstore"
	"github.com/DRSN-tech/ml-service/internal/repository/jsonfile"
	s3Repo "github.com/DRSN-tech/ml-service/internal/repository/minio"
	"github.com/DRSN-tech/ml-service/internal/repository/pgdb"
	"github.com/DRSN-tech/ml-service/internal/repository/redis"
	"github.com/DRSN-tech/ml-service/internal/usecase"
	"github.com/DRSN-tech/ml-service/pkg/clients"
	"github.com/DRSN-tech/ml-service/pkg/closer"
	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/DRSN-tech/ml-service/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает все слои сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(5 * time.Second)

	products, err := loadCatalog(cfg, log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cat := catalog.New(products)
	log.Infof("catalog loaded: %d products, %d categories", cat.Len(), len(cat.Categories()))

	store, err := embstore.Load(cfg.Embeddings.VectorsPath, cfg.Embeddings.IDsPath)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	log.Infof("embedding store loaded: %d vectors (dim %d)", store.Len(), store.Dim())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, cfg.Redis, log)

	var imageRepo usecase.ImageRepository
	if cfg.Minio != nil {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			log.Errorf(err, "failed to initialize minio client")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := clients.CheckBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			minioCancel()
			log.Errorf(err, "failed to check MinIO bucket")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		minioCancel()

		imageRepo = s3Repo.NewImageRepo(minioClient, cfg.Minio)
	}

	extractorClient := extractor.NewClient(cfg.Extractor, log)
	bld := builder.NewBuilder(cat, store, extractorClient, imageRepo, cfg.Extractor, cfg.Embeddings, log)

	var producer usecase.EventProducer
	if cfg.Kafka != nil {
		kafkaProducer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			log.Errorf(err, "failed to initialize kafka producer")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if err := kafkaProducer.EnsureTopic(10 * time.Second); err != nil {
			log.Errorf(err, "failed to ensure kafka topic")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add(func(ctx context.Context) error {
			return kafkaProducer.Close()
		})
		producer = kafkaProducer
	}

	recUC := usecase.NewRecommendUC(cat, cacheRepo, log)
	imgUC := usecase.NewImageSearchUC(store, extractorClient, log)
	prUC := usecase.NewProductUC(cat, cacheRepo, log)
	buildUC := usecase.NewBuildUC(bld, producer, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(recUC, imgUC, prUC, buildUC)

	return &App{
		cfg:     cfg,
		logger:  log,
		closer:  cl,
		httpSrv: v1Http.NewServer(r, cfg.Http),
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки
// или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// loadCatalog читает каталог из настроенного источника.
// Postgres используется только для чтения снимка на старте,
// соединение закрывается сразу после загрузки.
func loadCatalog(cfg *config.Config, log logger.Logger) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return jsonfile.NewCatalogRepo(cfg.Catalog, log).LoadProducts(ctx)
	case config.CatalogSourcePostgres:
		db, err := postgres.Connect(cfg.Db)
		if err != nil {
			log.Errorf(err, "failed to connect to database")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Errorf(err, "failed to ping database")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return pgdb.NewCatalogRepo(db.Pool).LoadProducts(ctx)
	default:
		return nil, e.Wrap(cfg.Catalog.Source, e.ErrUnknownCatalogSource)
	}
}
