package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"assessrec/catalog"
	"assessrec/config"
	"assessrec/embedding"
	"assessrec/extract"
	"assessrec/logger"
	"assessrec/recommend"
)

const app = "assessrec"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "assessrec recommends catalog assessments for a job query or posting URL",
	}
)

func init() {
	if err := viper.BindEnv("embedding.service-url", "EMBEDDING_SERVICE_URL"); err != nil {
		log.Fatalf("binding EMBEDDING_SERVICE_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is assessrec.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// A missing config file is fine, defaults and env cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("reading config file: %v", err)
		}
	}
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	return l
}

// buildEngine assembles the whole service: config, snapshot, embedding client
// (with optional bbolt cache), extractor, and the ranking engine. The
// dimension probe runs here so that a model/snapshot mismatch aborts before
// any front-end starts serving. The returned func releases the cache.
func buildEngine(ctx context.Context, zl *zap.Logger) (*recommend.Engine, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	snap, err := catalog.Load(cfg.Snapshot)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	zl.Info("catalog snapshot loaded",
		zap.String("path", cfg.Snapshot),
		zap.String("model", snap.Model),
		zap.Int("items", len(snap.Items)),
		zap.Int("dimension", snap.Dimension),
	)

	var embedder embedding.Client = embedding.NewTEI(cfg.Embedding.ServiceURL)
	cleanup := func() {}
	if cfg.Embedding.CachePath != "" {
		cache, err := embedding.NewCache(cfg.Embedding.CachePath, snap.Model, embedder, zl)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening embedding cache: %w", err)
		}
		embedder = cache
		cleanup = func() { cache.Close() }
	}

	extractor := extract.New(cfg.Extract.Timeout, zl)
	engine := recommend.NewEngine(embedder, snap, extractor, zl)

	if err := engine.Verify(ctx); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("verifying embedding model against snapshot: %w", err)
	}

	return engine, cfg, cleanup, nil
}
