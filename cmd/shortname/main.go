package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/shortname/internal/logger"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "shortname",
		Short: "Generate 35-character short names from medical product descriptions",
		Long: `shortname turns free-form product descriptions into short names of at most
35 characters, built from up to five positions (product type, product name,
primary variant, secondary variant, additional description) and abbreviated
with a dictionary of approved terms.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./shortname.yaml or $HOME/.config/shortname/shortname.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringP("dictionary", "d", "", "abbreviation dictionary (.csv, .tsv, .xlsx, .yaml)")
	rootCmd.PersistentFlags().String("dictionary-db", "", "SQLite database holding an imported dictionary")
	rootCmd.PersistentFlags().String("ruleset", "", "recognizer ruleset YAML (default: built in)")
	rootCmd.PersistentFlags().Int("cache-size", 0, "results cached per dictionary (0 = default, <0 = off)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("dictionary.path", rootCmd.PersistentFlags().Lookup("dictionary"))
	_ = viper.BindPFlag("dictionary.db", rootCmd.PersistentFlags().Lookup("dictionary-db"))
	_ = viper.BindPFlag("ruleset.path", rootCmd.PersistentFlags().Lookup("ruleset"))
	_ = viper.BindPFlag("cache.size", rootCmd.PersistentFlags().Lookup("cache-size"))
	_ = viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))

	// Add commands
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(dictCmd())
	rootCmd.AddCommand(interactiveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/shortname")
		}
		viper.SetConfigName("shortname")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SHORTNAME")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := logger.DefaultConfig()
	cfg.Level = viper.GetString("logging.level")
	cfg.Format = viper.GetString("logging.format")
	cfg.Version = version
	log := logger.Setup(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, log))

	if addr := viper.GetString("metrics.addr"); addr != "" {
		serveMetrics(cmd.Context(), addr)
	}
	return nil
}

// serveMetrics exposes /metrics until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	slog.Info("serving metrics", "addr", addr)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shortname %s\n", version)
		},
	}
}
