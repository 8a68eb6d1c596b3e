package bootstrap

import (
	"time"

	"github.com/weljim73-spec/soccertrainerocr/internal/config"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/ports"
	"github.com/weljim73-spec/soccertrainerocr/internal/core/usecase"
	"github.com/weljim73-spec/soccertrainerocr/internal/infrastructure/llm/anthropic"
	"github.com/weljim73-spec/soccertrainerocr/internal/infrastructure/resilience"
	"github.com/weljim73-spec/soccertrainerocr/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.HTTPServerMetrics

	Vision    ports.VisionModel
	ExtractUC ports.SessionExtractor
}

func New(cfg config.Config) *App {
	execCfg := resilience.DefaultConfig()
	execCfg.BreakerEnabled = cfg.VisionBreakerEnabled
	executor := resilience.NewExecutor(execCfg)

	vision := anthropic.New(
		cfg.AnthropicURL,
		cfg.AnthropicAPIKey,
		time.Duration(cfg.VisionTimeoutSeconds)*time.Second,
		executor,
	)

	// Classification runs on the cheap tier; it only needs a one-line
	// label back.
	validator := usecase.NewValidateSessionUseCase(vision, cfg.ExtractionFallbackModel)

	extractUC := usecase.NewExtractSessionUseCase(
		vision,
		validator,
		cfg.ExtractionModel,
		cfg.ExtractionFallbackModel,
		usecase.ResponseMode(cfg.ExtractionResponseMode),
		cfg.APIKeyMode,
		cfg.AnthropicAPIKey,
		usecase.ExtractLimits{
			MaxFileSizeBytes: cfg.MaxFileSizeBytes,
			MaxFiles:         cfg.MaxFiles,
			PerType: map[domain.SessionType]int{
				domain.SessionMatch:        cfg.MaxFilesMatch,
				domain.SessionBallWork:     cfg.MaxFilesBallWork,
				domain.SessionSpeedAgility: cfg.MaxFilesSpeedAgility,
			},
		},
	)

	return &App{
		Config:    cfg,
		Metrics:   metrics.NewHTTPServerMetrics("api"),
		Vision:    vision,
		ExtractUC: extractUC,
	}
}
