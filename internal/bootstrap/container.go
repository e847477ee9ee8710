package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"shell-assistant-be/internal/config"
	"shell-assistant-be/internal/constant"
	"shell-assistant-be/internal/controller"
	"shell-assistant-be/internal/pkg/logger"
	"shell-assistant-be/internal/repository/memory"
	"shell-assistant-be/internal/repository/unitofwork"
	"shell-assistant-be/internal/service"
	"shell-assistant-be/internal/websocket"
	"shell-assistant-be/pkg/classifier"
	"shell-assistant-be/pkg/dispatch"
	"shell-assistant-be/pkg/docs"
	pktNats "shell-assistant-be/pkg/nats"
	"shell-assistant-be/pkg/vocab"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	IngestionController controller.IIngestionController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	IngestionService service.IIngestionService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub for the ops telemetry feed
	wsLogger := logger.NewIsolatedLogger("logs/ops_feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Routing Core
	termTTL := time.Duration(cfg.Router.TermTTLHours) * time.Hour

	ingestionService := service.NewIngestionService(uowFactory, sysLogger, termTTL)
	if err := ingestionService.Bootstrap(context.Background()); err != nil {
		log.Printf("[WARN] Registry bootstrap failed, starting on fallback vocabulary: %v", err)
	}

	dispatchLogger := log.New(os.Stdout, "", log.LstdFlags)
	engineConfig := docs.DefaultConfig()
	engineConfig.FloorScore = cfg.Router.FloorScore
	engineConfig.ConfidenceScore = cfg.Router.ConfidenceScore
	engineConfig.MinGap = cfg.Router.MinGap
	engineConfig.WeakScoreMin = cfg.Router.WeakScoreMin

	engine := docs.NewEngine(engineConfig, dispatchLogger)
	matcher := vocab.NewMatcher(func(inputToken, matchedTerm string, distance int) {
		dispatchLogger.Printf("[VOCAB] Fuzzy hit: %q -> %q (d=%d)", inputToken, matchedTerm, distance)
	})

	var fallback dispatch.Classifier
	classifierTimeout := time.Duration(cfg.Classifier.TimeoutMs) * time.Millisecond
	if cfg.Classifier.Enabled {
		fallback = classifier.NewHTTPClassifier(
			cfg.Classifier.BaseURL,
			cfg.Classifier.Model,
			classifierTimeout,
		)
		log.Printf("[INFO] Using fallback classifier: %s (%s)", cfg.Classifier.BaseURL, cfg.Classifier.Model)
	} else {
		log.Printf("[INFO] Fallback classifier disabled, fallback turns get the deterministic decline")
	}

	dispatcher := dispatch.NewDispatcher(
		matcher,
		engine,
		ingestionService,
		ingestionService.Corpus,
		ingestionService.Aliases,
		fallback,
		classifierTimeout,
		dispatchLogger,
	)

	// 4. Services
	sessionRepo := memory.NewSessionRepository()

	publisherService := service.NewPublisherService(constant.RoutingDecisionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.RoutingDecisionTopic,
		natsPub,
		wsHub,
		sysLogger,
	)

	assistantService := service.NewAssistantService(
		sessionRepo,
		dispatcher,
		ingestionService,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		IngestionController: controller.NewIngestionController(ingestionService),

		ConsumerService:  consumerService,
		IngestionService: ingestionService,
		WebSocketHub:     wsHub,
	}
}
