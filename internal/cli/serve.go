package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mskaar/pensum/internal/cache"
	"github.com/mskaar/pensum/internal/canvas"
	"github.com/mskaar/pensum/internal/index"
	"github.com/mskaar/pensum/internal/logger"
	"github.com/mskaar/pensum/internal/model"
	"github.com/mskaar/pensum/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pensum backend",
	Long: `Start the HTTP backend: load or build the course index, then serve
question answering and Canvas passthrough endpoints.

Credentials come from the environment (or a .env file):
  CANVAS_DOMAIN     e.g. uio.instructure.com
  CANVAS_API_TOKEN  Canvas access token
  OPENAI_API_KEY    OpenAI (or compatible) API key
  OPENAI_BASE_URL   optional, for OpenAI-compatible providers`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadConfig builds the effective configuration: defaults, then config
// file and PENSUM_* variables via viper, then the credential variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if v := os.Getenv("CANVAS_DOMAIN"); v != "" {
		cfg.Canvas.Domain = v
	}
	if v := os.Getenv("CANVAS_API_TOKEN"); v != "" {
		cfg.Canvas.Token = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}

	if cfg.Canvas.Domain == "" {
		return nil, fmt.Errorf("canvas domain is not set (CANVAS_DOMAIN)")
	}
	return cfg, nil
}

// unavailableAnswerer stands in when the OpenAI client cannot be built;
// every question fails with the configuration error.
type unavailableAnswerer struct {
	err error
}

func (u unavailableAnswerer) Answer(ctx context.Context, question string) (string, error) {
	return "", u.err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	canvasClient := canvas.NewClient(cfg.Canvas, responseCache)
	store := index.NewStore(cfg.Index.DBPath)
	builder := index.NewBuilder(canvasClient, cfg.Index.Workers, log)

	var answerer server.Answerer
	var refresh server.RefreshFunc

	embedder, embErr := index.NewOpenAIEmbedder(cfg.OpenAI)
	if embErr != nil {
		// Start degraded: Canvas endpoints keep working, QA reports the
		// configuration problem.
		log.Warnf("QA unavailable: %v", embErr)
		answerer = unavailableAnswerer{err: fmt.Errorf("OpenAI API key not configured: %w", embErr)}
		refresh = func(ctx context.Context) (int, error) {
			return 0, fmt.Errorf("cannot refresh embeddings: %w", embErr)
		}
	} else {
		answerer = index.NewAnswerer(cfg.OpenAI, embedder, store, cfg.Index.TopK)
		refresh = func(ctx context.Context) (int, error) {
			return rebuildIndex(ctx, builder, embedder, store, log)
		}
	}

	// Reuse a persisted index when one exists; otherwise build it now.
	loaded, err := store.Load()
	if err != nil {
		log.Error("Failed to load persisted index", err)
	}
	if loaded {
		log.Infof("loaded %d documents from %s", store.Len(), cfg.Index.DBPath)
	} else {
		startupCtx := cmd.Context()
		if _, err := refresh(startupCtx); err != nil {
			log.Error("Startup indexing failed, serving degraded", err)
		}
	}

	handler := server.NewHandler(
		answerer,
		canvasClient,
		store,
		refresh,
		cfg.Canvas.Token != "" && cfg.Canvas.Domain != "",
		cfg.OpenAI.APIKey != "",
		log,
	)

	srv := server.New(cfg.Server, handler, log)
	if err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// rebuildIndex fetches Canvas content, embeds it and swaps it into the
// store, persisting the result for the next start.
func rebuildIndex(ctx context.Context, builder *index.Builder, embedder index.Embedder, store *index.Store, log *logger.Logger) (int, error) {
	docs, err := builder.Build(ctx)
	if err != nil {
		return 0, err
	}

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}

	vecs, err := embedder.Embed(ctx, contents)
	if err != nil {
		return 0, err
	}
	if err := store.Replace(docs, vecs); err != nil {
		return 0, err
	}
	if err := store.Save(); err != nil {
		log.Error("Failed to persist index", err)
	}
	return len(docs), nil
}
