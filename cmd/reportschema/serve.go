package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportschema/internal/server"
	"github.com/goliatone/go-reportschema/internal/store"
)

func (a *app) serveCmd() *cobra.Command {
	var addr, dsn string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("dsn") {
				a.cfg.Store.DSN = dsn
			}

			ctx := cmd.Context()
			st, err := store.OpenSQLite(ctx, a.cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer st.Close()
			a.logger.Info("template store ready", slog.String("dsn", a.cfg.Store.DSN))

			srv := server.New(st,
				server.WithValidator(a.validator()),
				server.WithLogger(a.logger),
				server.WithStrictImport(a.cfg.Server.StrictImport),
				server.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout),
			)
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "SQLite DSN (overrides store.dsn)")
	return cmd
}
