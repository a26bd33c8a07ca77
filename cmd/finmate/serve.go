package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finmate/internal/api"
	"github.com/Veraticus/finmate/internal/engine"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve the FinMate HTTP API: field extraction, budget allocation,
success metrics, suggestions and user profiles.`,
		RunE: a.runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gen := a.generator()
	suggester := a.suggester(gen)
	defer suggester.Close()

	server := api.New(api.Deps{
		Extractor: a.pipeline(gen),
		Suggester: suggester,
		Profiles:  engine.NewProfiles(store, slog.Default()),
		Logger:    slog.Default(),
	}, a.cfg.Server.AllowedOrigins)

	return server.Start(ctx, a.cfg.Server.ListenAddr())
}
