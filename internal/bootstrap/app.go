package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	"contract-backend/internal/analyses"
	"contract-backend/internal/config"
	"contract-backend/internal/documents"
	"contract-backend/internal/llm"
	"contract-backend/internal/llm/anthropic"
	"contract-backend/internal/llm/openai"
	"contract-backend/internal/processing"
	"contract-backend/internal/resilience"
	"contract-backend/internal/services/health"
	"contract-backend/internal/shared/server"
	"contract-backend/internal/shared/storage/object"
	localstore "contract-backend/internal/shared/storage/object/local"
	s3store "contract-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired together from config.
type App struct {
	Config config.Config
	Router *gin.Engine

	Store     object.Store
	Primary   llm.Client
	Secondary llm.Client

	Processor        *processing.Processor
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	Health           *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	primary, secondary := buildProviders(cfg)
	if primary == nil && secondary == nil && !cfg.FallbackEnabled {
		return nil, errors.New("no inference providers configured and fallback disabled")
	}

	proc := processing.New(primary, secondary, processing.Options{
		Retry: resilience.RetryConfig{
			MaxAttempts: cfg.RetryMaxAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
			MaxDelay:    cfg.RetryMaxDelay,
		},
		BreakerThreshold: cfg.BreakerThreshold,
		BreakerTimeout:   cfg.BreakerTimeout,
		FallbackEnabled:  cfg.FallbackEnabled,
	})

	docSvc := &documents.Service{
		Store:    store,
		Registry: documents.NewRegistry(),
	}
	docHandler := documents.NewHandler(docSvc)
	analysisHandler := analyses.NewHandler(proc, docSvc, analyses.NewRegistry())
	healthSvc := health.NewService(cfg.Env, providerNames(primary, secondary))

	app := &App{
		Config:           cfg,
		Store:            store,
		Primary:          primary,
		Secondary:        secondary,
		Processor:        proc,
		DocumentsService: docSvc,
		DocumentsHandler: docHandler,
		AnalysisHandler:  analysisHandler,
		Health:           healthSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          healthSvc,
		DocumentHandler: docHandler,
		AnalysisHandler: analysisHandler,
	})

	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if cfg.AWSRegion == "" || cfg.S3Bucket == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3store.New(awss3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildProviders constructs the configured inference clients. A missing API
// key leaves that slot nil rather than failing the boot.
func buildProviders(cfg config.Config) (llm.Client, llm.Client) {
	var primary, secondary llm.Client

	if client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel); err == nil {
		primary = client
	} else if !errors.Is(err, llm.ErrNotConfigured) {
		log.Printf("bootstrap: openai client unavailable: %v", err)
	}

	if client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel); err == nil {
		secondary = client
	} else if !errors.Is(err, llm.ErrNotConfigured) {
		log.Printf("bootstrap: anthropic client unavailable: %v", err)
	}

	// Promote the secondary when the primary is absent so a single configured
	// provider still takes the retry-and-breaker path.
	if primary == nil && secondary != nil {
		primary, secondary = secondary, nil
	}

	return primary, secondary
}

func providerNames(clients ...llm.Client) []string {
	names := make([]string, 0, len(clients))
	for _, c := range clients {
		if c != nil {
			names = append(names, c.Name())
		}
	}
	return names
}
