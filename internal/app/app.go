package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/cinelist/movie-catalog-service/internal/domain"
	"github.com/cinelist/movie-catalog-service/internal/media"
	"github.com/cinelist/movie-catalog-service/internal/repository"
	appvalidator "github.com/cinelist/movie-catalog-service/internal/validator"
	"github.com/cinelist/movie-catalog-service/internal/vcs"
	"github.com/cinelist/movie-catalog-service/internal/worker"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	media     media.Store

	movieRepo    domain.MovieRepository
	directorRepo domain.DirectorRepository
	genreRepo    domain.GenreRepository
	userRepo     domain.UserRepository
	likeRepo     domain.LikeRepository

	tempDir string
}

type Config struct {
	Port  int
	Env   string
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Media MediaConfig

	LikeRecountInterval time.Duration
	TempSweepInterval   time.Duration
	TempUploadMaxAge    time.Duration
	RecentCacheTTL      time.Duration

	OtelCollectorURL string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type JWTConfig struct {
	Secret string
}

type MediaConfig struct {
	Mode       string // local|s3
	BaseDir    string
	S3Bucket   string
	S3Region   string
	PresignTTL time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.JWT.Secret, "jwt-secret", "", "HMAC secret of the token issuer")

	flag.StringVar(&cfg.Media.Mode, "media-mode", "local", "Media storage mode (local|s3)")
	flag.StringVar(&cfg.Media.BaseDir, "media-dir", ".", "Base directory for local media storage")
	flag.StringVar(&cfg.Media.S3Bucket, "media-s3-bucket", "", "S3 bucket for movie files")
	flag.StringVar(&cfg.Media.S3Region, "media-s3-region", "", "S3 region for movie files")
	flag.DurationVar(&cfg.Media.PresignTTL, "media-presign-ttl", 5*time.Minute, "Lifetime of presigned upload URLs")

	flag.DurationVar(&cfg.LikeRecountInterval, "like-recount-interval", time.Minute, "Cadence of the like/dislike count recompute")
	flag.DurationVar(&cfg.TempSweepInterval, "temp-sweep-interval", time.Hour, "Cadence of the stale temp upload sweeper")
	flag.DurationVar(&cfg.TempUploadMaxAge, "temp-upload-max-age", 24*time.Hour, "Age after which temp uploads are swept")
	flag.DurationVar(&cfg.RecentCacheTTL, "recent-cache-ttl", 30*time.Second, "TTL of the recent movies cache")

	flag.StringVar(&cfg.OtelCollectorURL, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func NewApplication(cfg Config, logger *slog.Logger) (*Application, error) {
	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	mediaStore, tempDir, err := newMediaStore(cfg)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	app := &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: appvalidator.NewValidator(),
		media:     mediaStore,
		tempDir:   tempDir,

		movieRepo:    repository.NewPostgresMovieRepository(db, mediaStore),
		directorRepo: repository.NewPostgresDirectorRepository(db),
		genreRepo:    repository.NewPostgresGenreRepository(db),
		userRepo:     repository.NewPostgresUserRepository(db),
		likeRepo:     repository.NewPostgresLikeRepository(db),
	}

	return app, nil
}

func (app *Application) Close() {
	app.db.Close()
	app.redis.Close()
}

func newMediaStore(cfg Config) (media.Store, string, error) {
	if cfg.Media.Mode == "s3" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Media.S3Region))
		if err != nil {
			return nil, "", err
		}

		store := media.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Media.S3Bucket, cfg.Media.PresignTTL)

		// S3 temp objects are swept by bucket lifecycle rules, not by us.
		return store, "", nil
	}

	store, err := media.NewLocalStore(cfg.Media.BaseDir)
	if err != nil {
		return nil, "", err
	}

	return store, store.TempDir(), nil
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	recalculator := worker.NewLikeCountRecalculator(app.likeRepo, app.logger, app.config.LikeRecountInterval)
	wg.Add(1)
	go func() {
		defer wg.Done()
		recalculator.Run(workerCtx)
	}()

	if app.tempDir != "" {
		sweeper := worker.NewTempFileSweeper(app.tempDir, app.logger, app.config.TempSweepInterval, app.config.TempUploadMaxAge)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sweeper.Run(workerCtx)
		}()
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		stopWorkers()
		wg.Wait()

		shutdownError <- err
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
