package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"assessrec/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactively search for assessments in the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() {
	zl := newLogger()
	defer zl.Sync()

	engine, cfg, cleanup, err := buildEngine(context.Background(), zl)
	if err != nil {
		zl.Fatal("service unavailable", zap.Error(err))
	}
	defer cleanup()

	if err := tui.Run(engine, cfg.TopN, engine.Model(), engine.Size()); err != nil {
		zl.Fatal("tui exited with error", zap.Error(err))
	}
}
