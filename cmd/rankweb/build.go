package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"top10animes.net/rank-web/internal/export"
	"top10animes.net/rank-web/internal/observability"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var (
		outDir string
		lang   string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the ranking pages as a static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			a, err := newApp(cfg, logger, nil)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = cfg.DefaultLang
			}
			ctx := observability.WithLogger(cmd.Context(), logger)
			m, err := export.Build(ctx, export.Options{Assembler: a.asm, OutDir: outDir, Lang: lang})
			if err != nil {
				return err
			}
			logger.Debug("manifest", zap.Any("pages", m.Pages))
			fmt.Fprintf(cmd.OutOrStdout(), "build %s written to %s\n", m.ID, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&lang, "lang", "", "page language (default from config)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
