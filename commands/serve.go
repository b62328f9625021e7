package commands

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/config"
	"github.com/c360studio/semshacl/service"
)

func newServeCommand(logger *slog.Logger) *cobra.Command {
	var (
		natsURL       string
		subjectPrefix string
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the NATS validation service",
		Long: `Run a validation service that answers requests on
<prefix>.validate and <prefix>.conforms over NATS request/reply.

Requests carry the shapes and data graphs inline as JSON, responses the
rendered report. Prometheus metrics are served when a metrics address is
configured.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := resolveLogger(logger)
			cfg, err := config.NewLoader(logger).Load()
			if err != nil {
				return err
			}
			if natsURL != "" {
				cfg.Service.URL = natsURL
			}
			if subjectPrefix != "" {
				cfg.Service.SubjectPrefix = subjectPrefix
			}
			if metricsAddr != "" {
				cfg.Service.MetricsAddr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := service.New(cfg, logger)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Close()

			logger.Info("service running",
				"url", cfg.Service.URL,
				"prefix", cfg.Service.SubjectPrefix)

			<-ctx.Done()
			logger.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL")
	cmd.Flags().StringVar(&subjectPrefix, "subject-prefix", "", "Subject prefix for the service")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics")

	return cmd
}
