package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/app"
	"github.com/abhisek/smartquiz/internal/config"
	"github.com/abhisek/smartquiz/internal/llm"
	"github.com/abhisek/smartquiz/internal/mastery"
	"github.com/abhisek/smartquiz/internal/qcache"
	"github.com/abhisek/smartquiz/internal/quizgen"
	"github.com/abhisek/smartquiz/internal/screens/play"
	"github.com/abhisek/smartquiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	ctx := context.Background()

	confPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	conf, err := config.Load(confPath)
	if err != nil {
		return err
	}

	cPath, err := cachePath(cmd)
	if err != nil {
		return err
	}
	if err := store.EnsureDir(cPath); err != nil {
		return err
	}
	cache, err := qcache.Open(cPath)
	if err != nil {
		return fmt.Errorf("open question cache: %w", err)
	}

	pPath, err := profilePath(cmd)
	if err != nil {
		return err
	}
	tracker, err := mastery.Open(pPath)
	if err != nil {
		return fmt.Errorf("open learner profile: %w", err)
	}

	// Event log for provider requests.
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open event database: %w", err)
	}
	defer st.Close()

	// Build the generator. Without a provider the quiz still plays from
	// the cache.
	var gen quizgen.Generator = quizgen.OfflineGenerator{}
	provider, err := buildProvider(ctx, conf, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Playing from cached questions only.")
	} else {
		gen = quizgen.NewLLMGenerator(provider, quizgen.DefaultConfig())
	}

	pipeline := quizgen.NewPipeline(cache, gen, quizgen.DefaultConfig())

	return app.Run(play.Deps{
		Source:  pipeline,
		Cache:   cache,
		Mastery: tracker,
		Config:  conf,
	})
}

// buildProvider merges the config-file provider selection over the
// environment and constructs the provider stack.
func buildProvider(ctx context.Context, conf config.Config, st *store.Store) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if conf.Provider != "" {
		cfg.Provider = conf.Provider
	}
	if conf.Model != "" {
		switch cfg.Provider {
		case "groq":
			cfg.Groq.Model = conf.Model
		case "openai":
			cfg.OpenAI.Model = conf.Model
		case "anthropic":
			cfg.Anthropic.Model = conf.Model
		case "gemini":
			cfg.Gemini.Model = conf.Model
		}
	}

	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return llm.NewProvider(ctx, cfg, st)
}
