// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/quixsi/luxeplate/internal/advisor"
	"github.com/quixsi/luxeplate/internal/auth"
	"github.com/quixsi/luxeplate/internal/controller"
	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/db/jsondb"
	"github.com/quixsi/luxeplate/internal/db/kvdb"
	"github.com/quixsi/luxeplate/internal/notify"
	"github.com/quixsi/luxeplate/internal/payment"
	"github.com/quixsi/luxeplate/internal/server"
)

func main() {
	var (
		serviceName  = flag.String("service-name", "luxeplate", "otel service name")
		addr         = flag.String("addr", "0.0.0.0:8080", "default server address")
		dbStr        = flag.String("db", "kvdb://testdata/luxeplate.db", "database connection string, kvdb://<file> or jsondb://<dir>")
		otlpAddr     = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg  = flag.String("log-level", "INFO", "log level")
		demoAuth     = flag.Bool("demo-auth", true, "accept any password for existing accounts")
		redisURL     = flag.String("redis", "", "redis url for the recommendation cache, e.g. redis://localhost:6379/0")
		kafkaBrokers = flag.String("kafka-brokers", "", "comma separated kafka brokers for booking events")
		kafkaTopic   = flag.String("kafka-topic", "luxeplate.bookings", "kafka topic for booking events")
		currency     = flag.String("currency", "gbp", "payment currency")
		modelName    = flag.String("model", "gemini-1.5-flash", "generative model used by the advisor")
		freeze       = flag.String("freeze", "", "switch to read only at this time, format: 01 May 24 10:00 CET")
		sessionIdle  = flag.Duration("session-idle", time.Hour, "drop in-memory session state after this idle time")
	)
	flag.Parse()
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("start and listen", "address", *addr)
	logger.Info("otlp/gRPC", "address", *otlpAddr, "service", *serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *otlpAddr != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		grpcOptions := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock()}
		conn, err := grpc.DialContext(dialCtx, *otlpAddr, grpcOptions...)
		if err != nil {
			logger.Error("failed to create gRPC connection to collector", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		otelExporter, err := otlptracegrpc.New(dialCtx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			logger.Error("failed to create trace exporter", "error", err)
			os.Exit(1)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(otelExporter))
		defer tp.Shutdown(context.Background())
		otel.SetTracerProvider(tp)
	}

	var freezeAt time.Time
	if *freeze != "" {
		freezeAt, err = time.Parse(time.RFC822, *freeze)
		if err != nil {
			logger.Error("failed to parse freeze time", "error", err)
			os.Exit(1)
		}
		logger.Info("read only from", "date", freezeAt)
	}

	store, err := openDatabase(*dbStr)
	if err != nil {
		logger.Error("could not open database", "db", *dbStr, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var cache *advisor.RedisCache
	if *redisURL != "" {
		opts, err := redis.ParseURL(*redisURL)
		if err != nil {
			logger.Error("unable to parse redis url", "error", err)
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		cache = advisor.NewRedisCache(client, 24*time.Hour)
	}

	var model llms.Model
	if key, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
		model, err = googleai.New(ctx, googleai.WithAPIKey(key), googleai.WithDefaultModel(*modelName))
		if err != nil {
			logger.Error("could not create generative model client", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("GOOGLE_API_KEY not set, advisor runs with fallbacks only")
	}

	var pay controller.PaymentProcessor = payment.NewSimulator(*currency)
	if key, ok := os.LookupEnv("STRIPE_SECRET_KEY"); ok {
		pay = payment.NewStripe(key, *currency, nil)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payments are simulated")
	}

	notifier := notify.Multi{notify.NewConsole()}
	if *kafkaBrokers != "" {
		writer := notify.NewKafkaWriter(*kafkaTopic, strings.Split(*kafkaBrokers, ",")...)
		defer writer.Close()
		notifier = append(notifier, notify.NewKafkaPublisher(writer))
	}

	gate := auth.NewGate(store, *demoAuth)
	gate.AdminHash = os.Getenv("LUXEPLATE_ADMIN_PASSWORD_HASH")
	if !*demoAuth && gate.AdminHash == "" {
		logger.Warn("LUXEPLATE_ADMIN_PASSWORD_HASH not set, the admin account is not provisioned")
	}

	registry := controller.NewRegistry(controller.Deps{
		Store:    store,
		Auth:     gate,
		Advisor:  advisor.New(model, cache),
		Payment:  pay,
		Notifier: notifier,
	})

	cookies, err := cookieStore()
	if err != nil {
		logger.Error("could not set up session cookies", "error", err)
		os.Exit(1)
	}

	opsUser, opsPassword := "admin", "admin"
	if v, ok := os.LookupEnv("LUXEPLATE_OPS_USER"); ok {
		opsUser = v
	}
	if v, ok := os.LookupEnv("LUXEPLATE_OPS_PASSWORD"); ok {
		opsPassword = v
	}

	srv := &http.Server{
		Addr: *addr,
		Handler: server.NewServer(*serviceName, registry, cookies, server.Options{
			FreezeAt:    freezeAt,
			OpsUser:     opsUser,
			OpsPassword: opsPassword,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(*sessionIdle / 2)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := registry.Evict(*sessionIdle); n > 0 {
					logger.Debug("evicted idle sessions", "count", n)
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		registry.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("error during listen and serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}

func openDatabase(dsn string) (db.Database, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse db connection string: %w", err)
	}
	path := u.Host + u.Path
	switch u.Scheme {
	case "kvdb":
		return kvdb.Open(path)
	case "jsondb":
		return jsondb.Open(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", u.Scheme)
}

func cookieStore() (*sessions.CookieStore, error) {
	key := []byte(os.Getenv("LUXEPLATE_SESSION_KEY"))
	if len(key) == 0 {
		slog.Warn("LUXEPLATE_SESSION_KEY not set, sessions do not survive a restart")
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	store.Options.MaxAge = 30 * 24 * 60 * 60
	return store, nil
}
