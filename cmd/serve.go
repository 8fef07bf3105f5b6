package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-wayout/api"
	api_i "github.com/beka-birhanu/vinom-wayout/api/i"
	"github.com/beka-birhanu/vinom-wayout/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-wayout/api/maze"
	reportapi "github.com/beka-birhanu/vinom-wayout/api/report"
	"github.com/beka-birhanu/vinom-wayout/config"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/lock"
	logger "github.com/beka-birhanu/vinom-wayout/infrastruture/log"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/repo"
	"github.com/beka-birhanu/vinom-wayout/infrastruture/token"
	"github.com/beka-birhanu/vinom-wayout/service"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout    = 10 * time.Second
	reportsCollection = "run_reports"
)

// Service dependencies, built in order by the init functions.
var (
	cfg              config.Config
	redisClient      *redis.Client
	mongoClient      *mongo.Client
	runLocker        i.RunLocker
	reportRepo       i.ReportRepo
	sessionManager   *service.SessionManager
	jwtTokenizer     i.Tokenizer
	mazeController   api_i.Controller
	reportController api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve maze sessions over HTTP and stream their searches",
	RunE:  runServe,
}

func initRedis(ctx context.Context) {
	if cfg.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, run locks are kept in memory")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMongo(ctx context.Context) {
	if cfg.DBHost == "" {
		appLogger.Warning("DB_HOST not set, run reports are kept in memory")
		return
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRunLocker() {
	if redisClient == nil {
		runLocker = lock.NewMemoryRunLocker()
		appLogger.Info("In-memory run locker initialized")
		return
	}

	lockLogger, err := logger.New("RUN-LOCK", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run lock logger: %v", err))
		os.Exit(1)
	}
	runLocker, err = lock.NewRedisRunLocker(redisClient, cfg.RunLockTTL, lockLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis run locker: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Redis run locker initialized")
}

func initReportRepo() {
	if mongoClient == nil {
		reportRepo = repo.NewMemoryReportRepo(0)
		appLogger.Info("In-memory report repository initialized")
		return
	}
	reportRepo = repo.NewMongoReportRepo(mongoClient, cfg.DBName, reportsCollection)
	appLogger.Info("Report repository initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		Locker:  runLocker,
		Reports: reportRepo,
		Timing:  cfg.Timing(),
		Logger:  sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = newTokenizer(cfg)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating JWT tokenizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

// newTokenizer builds the session token service. JWT_SECRET must be set to a non-empty value.
func newTokenizer(c config.Config) (i.Tokenizer, error) {
	t, err := token.NewJwtService(c.JWTSecret, c.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}
	return t, nil
}

func initControllers() {
	algorithm, err := traversal.ParseAlgorithm(cfg.MazeAlgorithm)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("MAZE_ALGORITHM: %v, falling back to bfs", err))
		algorithm = traversal.BFS
	}

	mazeController, err = mazeapi.NewController(mazeapi.Config{
		Sessions:         sessionManager,
		Tokenizer:        jwtTokenizer,
		TokenTTL:         cfg.SessionTokenTTL,
		DefaultAlgorithm: algorithm,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	reportController, err = reportapi.NewController(sessionManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating report controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(cfg.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    cfg.Addr(),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController, reportController},
		AuthorizationMiddleware: identity.Authorize(t),
		OnShutdown:              sessionManager.StopAll,
	})
	appLogger.Info("Router initialized")
}

func runServe(cmd *cobra.Command, _ []string) error {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		return err
	}
	cfg = config.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	initRedis(connectCtx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initMongo(connectCtx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initRunLocker()
	initReportRepo()
	initSessionManager()
	initJWTTokenizer()
	initControllers()
	initRouter(jwtTokenizer)

	appLogger.Info(fmt.Sprintf("Serving on %s", cfg.Addr()))
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Serving: %v", err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
