// NewsPulse — Real-time news with sentiment analysis
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seenimoa/newspulse/api"
	"github.com/seenimoa/newspulse/internal/config"
	"github.com/seenimoa/newspulse/internal/digest"
	"github.com/seenimoa/newspulse/internal/logging"
	"github.com/seenimoa/newspulse/internal/pipeline"
	"github.com/seenimoa/newspulse/internal/topics"
	"github.com/seenimoa/newspulse/pkg/models"
	"github.com/seenimoa/newspulse/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

var cliLog = logging.New("cli")

// Timeout for one-shot fetch commands.
const fetchTimeout = 30 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newspulse",
	Short: "NewsPulse — Real-time news with sentiment analysis",
	Long: `NewsPulse fetches recent news by topic, scores each headline with a
lexicon sentiment model, and serves the results over HTTP alongside an
LLM-backed news assistant.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env before viper so keys defined there reach config loading.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		if err := logging.Setup(logging.Options{
			Level:      logging.ParseLevel(level),
			Dir:        cfg.Logging.Dir,
			Console:    cfg.Logging.Console,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		}); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		// Missing keys degrade features rather than block startup.
		for _, k := range config.CheckAPIKeys(cfg) {
			if !k.IsSet {
				cliLog.Warnf("%s not set", k.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("NewsPulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (HTTP Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the NewsPulse HTTP server: topic page, news and chat endpoints, /api/v1 and WebSocket chat.",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		srv.SetVersion(version)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("🌐 NewsPulse %s listening on http://%s\n", version, addr)
		return srv.ListenAndServe(addr)
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [topic]",
	Short: "Fetch and score recent articles for a topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := topics.Default
		if len(args) > 0 {
			topic = args[0]
		}

		analyzer, err := api.BuildAnalyzer(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		articles := analyzer.FetchAndScore(ctx, topic)
		summary := pipeline.Summarize(topics.Canonical(topic), articles)
		fmt.Print(digest.Text(summary, articles))
		return nil
	},
}

// --- Digest Command ---

var digestCmd = &cobra.Command{
	Use:   "digest [topic]",
	Short: "Render a markdown digest for a topic",
	Long:  "Fetch and score recent articles for a topic and render them as a markdown digest grouped by sentiment.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := topics.Default
		if len(args) > 0 {
			topic = args[0]
		}
		maxItems, _ := cmd.Flags().GetInt("max")
		noLinks, _ := cmd.Flags().GetBool("no-links")

		analyzer, err := api.BuildAnalyzer(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		articles := analyzer.FetchAndScore(ctx, topic)
		summary := pipeline.Summarize(topics.Canonical(topic), articles)

		dcfg := digest.DefaultConfig()
		dcfg.MaxItems = maxItems
		dcfg.ShowLinks = !noLinks
		fmt.Print(digest.Markdown(summary, articles, dcfg))
		return nil
	},
}

func init() {
	digestCmd.Flags().Int("max", 0, "cap articles per sentiment group (0 = all)")
	digestCmd.Flags().Bool("no-links", false, "render titles without markdown links")
}

// --- Chat Command ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start interactive chat with the news assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		assist := api.BuildAssistant(cfg)
		if !assist.Ready() {
			fmt.Println("⚠️  No LLM API key configured. Set GEMINI_API_KEY (or OPENAI_API_KEY) to enable chat.")
		}

		fmt.Println("💬 NewsPulse Chat")
		fmt.Println("   Type 'exit' or 'quit' to end the conversation")
		fmt.Println()

		var history []models.ChatTurn
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("You: ")
			if !scanner.Scan() {
				fmt.Println("\nGoodbye!")
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			switch strings.ToLower(line) {
			case "exit", "quit":
				fmt.Println("Goodbye!")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			reply := assist.RespondWithHistory(ctx, history, line)
			cancel()

			fmt.Printf("\nAssistant: %s\n\n", reply)
			history = append(history,
				models.ChatTurn{Role: "user", Text: line},
				models.ChatTurn{Role: "assistant", Text: reply},
			)
		}
	},
}

// --- Topics Command ---

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List available news topics",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("📰 Available topics:")
		for _, key := range topics.Keys() {
			marker := " "
			if key == topics.Default {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, key)
		}
		fmt.Println()
		fmt.Println("  * default")
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  NewsPulse — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Time:          %s\n", utils.FormatDateTime(time.Now()))
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    News Source:   %s (window %dh, page size %d)\n",
			cfg.News.Provider, cfg.News.WindowHours, cfg.News.PageSize)
		fmt.Printf("    LLM Provider:  %s (model: %s)\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Printf("    HTTP Server:   %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
