package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actionhub-org/HappyFox-practice/config"
	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/registry"
	"github.com/actionhub-org/HappyFox-practice/internal/service"
	"github.com/actionhub-org/HappyFox-practice/internal/slots"
	"github.com/actionhub-org/HappyFox-practice/internal/transport"
	"github.com/actionhub-org/HappyFox-practice/internal/transport/middleware"

	"github.com/actionhub-org/HappyFox-practice/pkg/aiclient"
	"github.com/actionhub-org/HappyFox-practice/pkg/identity"
	"github.com/actionhub-org/HappyFox-practice/pkg/mailer"
	mongoclient "github.com/actionhub-org/HappyFox-practice/pkg/mongo"
	"github.com/actionhub-org/HappyFox-practice/pkg/queue"
	"github.com/actionhub-org/HappyFox-practice/pkg/redis"
	"github.com/actionhub-org/HappyFox-practice/pkg/webhook"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, client, err := mongoclient.NewDatabase(&mongoclient.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logrus.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	approverRepo := repository.NewApproverRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Load the approver chain registry; seed it on first run
	approvers := registry.New(approverRepo)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := approvers.Load(startupCtx); err != nil {
		logrus.Fatalf("Failed to load approver registry: %v", err)
	}
	if len(approvers.All()) == 0 {
		logrus.Info("Approver registry empty, seeding defaults")
		if err := approvers.Reseed(startupCtx, registry.DefaultSeed()); err != nil {
			logrus.Fatalf("Failed to seed approver registry: %v", err)
		}
	}
	cancelStartup()

	// External collaborators, each optional
	var aiClient *aiclient.Client
	if cfg.AI.Enabled && cfg.AI.BaseURL != "" {
		aiClient = aiclient.NewClient(cfg.AI.BaseURL)
		logrus.Info("AI client initialized")
	} else {
		logrus.Warn("AI endpoint not configured, recommendations disabled")
	}

	var mail service.MailSender
	if cfg.Email.Enabled {
		mail = mailer.New(mailer.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
		})
		logrus.Info("Mailer initialized")
	} else {
		logrus.Warn("Email disabled, notification emails will be skipped")
	}

	var hook service.CardPoster
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		hook = webhook.NewClient(cfg.Webhook.URL)
		logrus.Info("Webhook client initialized")
	}

	var introspector *identity.Client
	if cfg.Auth.IntrospectURL != "" {
		introspector = identity.NewClient(cfg.Auth.IntrospectURL, cfg.Auth.APIKey)
		logrus.Info("Identity client initialized")
	} else {
		logrus.Warn("Auth introspection not configured, API is open")
	}

	// Task queue, optional
	var redisQueue *queue.RedisQueue
	var taskPublisher service.TaskPublisher
	if cfg.Redis.Enabled {
		queueConfig := queue.DefaultRedisQueueConfig()
		queueConfig.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		queueConfig.Password = cfg.Redis.Password
		queueConfig.DB = cfg.Redis.DB
		if cfg.Queue.MaxRetries > 0 {
			queueConfig.MaxRetries = cfg.Queue.MaxRetries
		}
		if cfg.Queue.BaseDelay > 0 {
			queueConfig.BaseDelay = cfg.Queue.BaseDelay
		}
		queueConfig.EnableDLQ = cfg.Queue.EnableDLQ

		retryManager := queue.NewRetryManager(queueConfig.MaxRetries, queueConfig.BaseDelay)
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		dlqHandler := queue.NewDefaultDLQHandler(redisClient, queueConfig.DLQ, queueConfig.MainQueue)

		redisQueue, err = queue.NewRedisQueue(queueConfig, retryManager, dlqHandler)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
			redisQueue = nil
		} else {
			logrus.Info("Redis queue initialized")
			taskPublisher = service.NewQueueAdapter(redisQueue)
		}
	}

	calendar := blockedIntervals(cfg.Calendar)

	// Initialize services
	var recommender service.Recommender
	var prioritizer service.Prioritizer
	var suggester service.DateSuggester
	if aiClient != nil {
		recommender = aiClient
		prioritizer = aiClient
		suggester = aiClient
	}

	resourceService := service.NewResourceService(resourceRepo, eventRepo, recommender, mail, hook, nil)
	approvalService := service.NewApprovalService(eventRepo, resourceService, taskPublisher)
	eventService := service.NewEventService(eventRepo, venueRepo, approvers, prioritizer, suggester, mail, calendar)
	reportService := service.NewReportService(eventRepo, resourceRepo, venueRepo)
	userService := service.NewUserService(userRepo, introspectorOrNil(introspector))
	venueService := service.NewVenueService(venueRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start queue consumer if a queue is wired
	if redisQueue != nil {
		taskHandler := queue.NewTaskHandler(resourceService)
		go func() {
			if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
		}()
		logrus.Info("Queue subscriber started")
		defer redisQueue.Close()
	}

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, approvalService, reportService, approvers)
	resourceHandler := transport.NewResourceHandler(resourceService)
	userHandler := transport.NewUserHandler(userService)
	venueHandler := transport.NewVenueHandler(venueService)
	adminHandler := transport.NewAdminHandler(userService, redisQueue)

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var authGuard middleware.TokenIntrospector
	if introspector != nil {
		authGuard = introspector
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(eventHandler, resourceHandler, userHandler, venueHandler, adminHandler, authGuard)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// blockedIntervals converts configured blocked periods into busy intervals
// for the slot scanner. Malformed entries are logged and skipped.
func blockedIntervals(cfg config.CalendarConfig) []slots.Interval {
	intervals := make([]slots.Interval, 0, len(cfg.Blocked))
	for _, p := range cfg.Blocked {
		start, err := time.Parse("2006-01-02", p.Start)
		if err != nil {
			logrus.Warnf("Skipping blocked period with bad start %q: %v", p.Start, err)
			continue
		}
		end, err := time.Parse("2006-01-02", p.End)
		if err != nil {
			logrus.Warnf("Skipping blocked period with bad end %q: %v", p.End, err)
			continue
		}
		intervals = append(intervals, slots.Interval{Start: start, End: end})
	}
	return intervals
}

// introspectorOrNil keeps the nil check out of the wiring above: a typed
// nil pointer must not become a non-nil interface.
func introspectorOrNil(c *identity.Client) service.TokenIntrospector {
	if c == nil {
		return nil
	}
	return c
}
