package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/backoffice/internal/certs"
	"github.com/Veraticus/backoffice/internal/devserver"
)

func devserverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local schedule service for development",
		Long: `Serve the schedule service grievance API from a local store so the
board and the grievances commands can be used without the real backend.

The store is SQLite at devserver.db_path, or Postgres when
devserver.database_url is set. An empty store is seeded with demo
grievances unless --seed=false.

With --tls the server uses a self-signed localhost certificate kept in
devserver.cert_dir. Set schedule.ca_file to its localhost.crt so the
console trusts it.`,
		RunE: runDevserver,
	}

	cmd.Flags().String("addr", "", "listen address (default from devserver.addr)")
	cmd.Flags().Bool("seed", true, "seed an empty store with demo grievances")
	_ = viper.BindPFlag("devserver.addr", cmd.Flags().Lookup("addr"))
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	_ = viper.BindPFlag("devserver.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("devserver.tls", cmd.Flags().Lookup("tls"))
	return cmd
}

func runDevserver(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := appConfig.DevServer

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	if cfg.Seed {
		if _, err := devserver.Seed(ctx, store); err != nil {
			return err
		}
	}

	opts := []devserver.Option{devserver.WithToken(appConfig.Schedule.Token)}
	if cfg.TLS {
		manager := certs.NewFileManager(cfg.CertDir)
		cert, err := manager.GetOrCreateCertificate()
		if err != nil {
			return err
		}
		slog.Info("Serving HTTPS", "ca_file", manager.CertFile())
		opts = append(opts, devserver.WithTLS(cert))
	}

	return devserver.New(store, opts...).Run(ctx, cfg.Addr)
}
