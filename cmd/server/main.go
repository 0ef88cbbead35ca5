package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"carebridge/internal/aiengine"
	aihandler "carebridge/internal/aiengine/handler"
	authadapters "carebridge/internal/auth/adapters"
	authhandler "carebridge/internal/auth/handler"
	authservice "carebridge/internal/auth/service"
	authstore "carebridge/internal/auth/store"
	"carebridge/internal/auth/token"
	childadapters "carebridge/internal/child/adapters"
	childhandler "carebridge/internal/child/handler"
	childmetrics "carebridge/internal/child/metrics"
	childservice "carebridge/internal/child/service"
	childstore "carebridge/internal/child/store"
	"carebridge/internal/document"
	documenthandler "carebridge/internal/document/handler"
	donationhandler "carebridge/internal/donation/handler"
	donationmetrics "carebridge/internal/donation/metrics"
	donationservice "carebridge/internal/donation/service"
	donationstore "carebridge/internal/donation/store"
	medicalhandler "carebridge/internal/medical/handler"
	medicalservice "carebridge/internal/medical/service"
	medicalstore "carebridge/internal/medical/store"
	"carebridge/internal/notify"
	"carebridge/internal/payment"
	paymenthandler "carebridge/internal/payment/handler"
	paymentservice "carebridge/internal/payment/service"
	"carebridge/internal/platform/config"
	"carebridge/internal/platform/httpserver"
	platformkafka "carebridge/internal/platform/kafka"
	"carebridge/internal/platform/logger"
	"carebridge/internal/platform/postgres"
	platformredis "carebridge/internal/platform/redis"
	schemehandler "carebridge/internal/scheme/handler"
	"carebridge/internal/scheme/matching"
	schememetrics "carebridge/internal/scheme/metrics"
	schemeservice "carebridge/internal/scheme/service"
	schemestore "carebridge/internal/scheme/store"
	httptransport "carebridge/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires stores, services, and handlers, then serves until ctx is
// cancelled. Every external system is optional: missing config falls back to
// in-memory implementations so a bare `go run` gives a working dev server.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var (
		accountStore     authstore.AccountStore
		childStore       childstore.ChildStore
		schemeStore      schemestore.SchemeStore
		applicationStore schemestore.ApplicationStore
		donationStore    donationstore.DonationStore
		caseStore        medicalstore.CaseStore
	)
	if cfg.PostgresURL != "" {
		pool, err := postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		accountStore = authstore.NewPostgres(pool)
		childStore = childstore.NewPostgres(pool)
		schemeStore = schemestore.NewSchemePostgres(pool)
		applicationStore = schemestore.NewApplicationPostgres(pool)
		donationStore = donationstore.NewPostgres(pool)
		caseStore = medicalstore.NewPostgres(pool)
	} else {
		log.Warn("CAREBRIDGE_POSTGRES_URL not set, using in-memory stores")
		accountStore = authstore.NewMemoryStore()
		childStore = childstore.NewMemoryStore()
		schemeStore = schemestore.NewSchemeMemoryStore()
		applicationStore = schemestore.NewApplicationMemoryStore()
		donationStore = donationstore.NewMemoryStore()
		caseStore = medicalstore.NewMemoryStore()
	}

	var sinks []notify.Publisher
	if cfg.RedisURL != "" {
		rc, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		sinks = append(sinks, notify.NewRedisPublisher(rc))
	}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := platformkafka.NewProducer(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer producer.Close()
		sinks = append(sinks, notify.NewKafkaPublisher(producer))
	}
	if len(sinks) == 0 {
		sinks = append(sinks, notify.NewMemoryPublisher())
	}
	events := notify.NewFanout(log, sinks...)

	tokens := token.NewJWTService(cfg.JWTSigningKey, cfg.TokenTTL)
	accounts := authadapters.NewAccountDirectory(accountStore)
	children := childadapters.NewRegistry(childStore)

	authSvc := authservice.New(accountStore, tokens, events, log)
	childSvc := childservice.New(childStore, accounts, log,
		childservice.WithMetrics(childmetrics.New()),
		childservice.WithEvents(events),
	)

	engine := matching.NewEngine(schemeStore, childStore)
	schemeSvc := schemeservice.New(schemeStore, applicationStore, children, engine, log,
		schemeservice.WithMetrics(schememetrics.New()),
	)

	medicalSvc := medicalservice.New(caseStore, children, log)

	donationSvc := donationservice.New(donationStore, accounts, children, log,
		donationservice.WithMetrics(donationmetrics.New()),
		donationservice.WithEvents(events),
		donationservice.WithMedicalCases(medicalSvc),
	)

	if cfg.PaymentKeySecret == "" {
		log.Warn("CAREBRIDGE_PAYMENT_KEY_SECRET not set, payment verification will reject everything")
	}
	gateway := payment.NewGateway(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentKeySecret)
	verifier := payment.NewVerifier(cfg.PaymentKeySecret)
	paymentSvc := paymentservice.New(gateway, verifier, donationSvc, log)

	var ai aiengine.Engine
	if cfg.AIEngineURL != "" {
		ai = aiengine.NewRemote(cfg.AIEngineURL)
		log.Info("using remote ai engine", "url", cfg.AIEngineURL)
	} else {
		ai = aiengine.NewBaseline(childStore, engine)
	}

	var blobs document.BlobStore
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return err
		}
		blobs = document.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Region)
	} else {
		local, err := document.NewLocalStore(cfg.UploadsDir)
		if err != nil {
			return err
		}
		blobs = local
	}

	router := httptransport.NewRouter(log,
		authhandler.New(authSvc, tokens, log),
		childhandler.New(childSvc, tokens, log),
		schemehandler.New(schemeSvc, tokens, log),
		donationhandler.New(donationSvc, tokens, log),
		paymenthandler.New(paymentSvc, tokens, log),
		medicalhandler.New(medicalSvc, tokens, log),
		aihandler.New(ai, tokens, log),
		documenthandler.New(blobs, childSvc, tokens, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("carebridge listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
