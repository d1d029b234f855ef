// Package app assembles the dependency graph.
package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/infrastructure/action"
	"github.com/doeshing/aimy-go/internal/infrastructure/ai"
	"github.com/doeshing/aimy-go/internal/infrastructure/cache"
	"github.com/doeshing/aimy-go/internal/infrastructure/config"
	"github.com/doeshing/aimy-go/internal/infrastructure/content"
	"github.com/doeshing/aimy-go/internal/infrastructure/envprobe"
	"github.com/doeshing/aimy-go/internal/infrastructure/heuristic"
	"github.com/doeshing/aimy-go/internal/infrastructure/httpapi"
	"github.com/doeshing/aimy-go/internal/infrastructure/memory"
	"github.com/doeshing/aimy-go/internal/infrastructure/osfacade"
	"github.com/doeshing/aimy-go/internal/infrastructure/security"
	"github.com/doeshing/aimy-go/internal/pkg/logger"
	"github.com/doeshing/aimy-go/internal/ports"
	"github.com/doeshing/aimy-go/internal/services"
)

// Container wires the dispatch pipeline with its infrastructure adapters.
type Container struct {
	Config   domain.Config
	Logger   *logger.ZapLogger
	Pipeline *services.Pipeline
	Server   *httpapi.Server
	History  ports.InteractionRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(verbose)
	if err != nil {
		return nil, err
	}

	probe := envprobe.New()
	engine := heuristic.New()

	timeout := time.Duration(cfg.Reasoning.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultReasoningTimeout
	}

	client := ai.NewClient(selectModel(cfg), &http.Client{Timeout: timeout}, cfg.Reasoning.RequestsPerSecond)

	classifyCache := cache.New(
		filepath.Join(probe.Home(), ".aimy", "cache", "classify"),
		cfg.Reasoning.ClassificationCacheSize,
		time.Hour,
	)

	// Without a credential the gateway would fail every request before
	// latching to the heuristics; skip the round trip entirely.
	var gateway *ai.Gateway
	var reasoner ports.Reasoner
	var responder action.Responder
	if client.Available() {
		gateway = ai.NewGateway(client, engine, classifyCache, log,
			cfg.Reasoning.ClassifyTemperature, cfg.Reasoning.GenerateTemperature)
		reasoner = client
		responder = gateway
	} else {
		log.Info("reasoning service unavailable, running on heuristics", map[string]interface{}{
			"model": client.Name(),
		})
	}

	gate, err := security.NewGate(probe, cfg.Security.Enabled, cfg.Security.RulesFile)
	if err != nil {
		log.Warn("permission rules unreadable, using built-in defaults", map[string]interface{}{
			"path":  cfg.Security.RulesFile,
			"error": err.Error(),
		})
		gate, err = security.NewGate(probe, cfg.Security.Enabled, "")
		if err != nil {
			return nil, err
		}
	}

	launcher := osfacade.NewLauncher("")
	browser := osfacade.NewBrowser()
	saver := content.NewSaver(cfg.Content)
	generator := content.NewGenerator(reasoner, launcher, browser, saver, log,
		cfg.Reasoning.GenerateTemperature)

	router := action.NewRouter(launcher, browser, gate, generator, engine, responder, probe, log)

	historyDir := filepath.Join(probe.Home(), ".aimy", "history")
	_ = os.MkdirAll(historyDir, domain.DirectoryPermissions)
	history := memory.NewSQLiteRepository(filepath.Join(historyDir, "interactions.db"))
	store := memory.NewStore()

	pipeline := &services.Pipeline{
		Heuristic: engine,
		Executor:  router,
		Contexts:  store,
		Patterns:  store,
		History:   history,
		Logger:    log,
		Timeout:   timeout,
	}
	if gateway != nil {
		pipeline.Gateway = gateway
	}

	server := httpapi.New(pipeline, cfg.Assistant, saver.Dirs(), log)

	return &Container{
		Config:   cfg,
		Logger:   log,
		Pipeline: pipeline,
		Server:   server,
		History:  history,
	}, nil
}

// selectModel resolves the configured default model, falling back to the
// first defined one.
func selectModel(cfg domain.Config) domain.ModelDefinition {
	for _, m := range cfg.Models {
		if m.Name == cfg.Reasoning.DefaultModel {
			return m
		}
	}
	if len(cfg.Models) > 0 {
		return cfg.Models[0]
	}
	return domain.ModelDefinition{}
}
