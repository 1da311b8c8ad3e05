package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"assessrec/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	zl := newLogger()
	defer zl.Sync()

	engine, cfg, cleanup, err := buildEngine(context.Background(), zl)
	if err != nil {
		zl.Fatal("service unavailable", zap.Error(err))
	}
	defer cleanup()

	server := api.NewServer(engine, zl, cfg.Server.Port, cfg.TopN)
	if err := server.Start(); err != nil {
		zl.Fatal("api server stopped", zap.Error(err))
	}
}
