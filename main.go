package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/snowcodeer/perplexitree/auth"
	"github.com/snowcodeer/perplexitree/config"
	"github.com/snowcodeer/perplexitree/handlers"
	"github.com/snowcodeer/perplexitree/logger"
	"github.com/snowcodeer/perplexitree/middleware"
	"github.com/snowcodeer/perplexitree/store"
	"github.com/snowcodeer/perplexitree/transform"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "perplexitree",
	Short:         "Serves the perplexitree plant store and study card API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Print a signed API token for subject using JWT_SECRET_KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _ := config.Load()
		token, err := auth.CreateToken(env.JWTSecretKey, args[0], tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serve() error {
	env, dotenvErr := config.Load()

	log, err := logger.New(env.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if dotenvErr != nil {
		log.Warn("main: .env file not found, environment variables might not be loaded", "error", dotenvErr)
	}

	s := store.Open(env.DBDriver, env.DBURL, log)

	var tr transform.Transformer = transform.Static{}
	if env.TransformAPIKey != "" {
		client, err := transform.NewClient(transform.Config{
			APIKey:  env.TransformAPIKey,
			BaseURL: env.TransformBaseURL,
			Model:   env.TransformModel,
		}, log)
		if err != nil {
			return err
		}
		tr = client
	} else {
		log.Warn("main: PERPLEXITY_API_KEY not set, search returns placeholders and card generation is disabled")
	}

	if env.JWTSecretKey == "" {
		log.Warn("main: JWT_SECRET_KEY not set, write routes are open")
	}

	mux := handlers.New(s, tr, log).Routes(middleware.RequireToken(env.JWTSecretKey, log))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(log, mux))

	log.Info("main: listening", "addr", env.Addr(), "db_driver", env.DBDriver, "store_ready", s.Ready())
	return http.ListenAndServe(env.Addr(), corsHandler)
}
