package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cybermatters/themis/pkg/cli/config"
	httpctrl "github.com/cybermatters/themis/pkg/controller/http"
	"github.com/cybermatters/themis/pkg/usecase"
	"github.com/cybermatters/themis/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var authCfg config.Auth
	var geminiCfg config.Gemini
	var slackCfg config.Slack
	var evidenceCfg config.Evidence

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("THEMIS_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, evidenceCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			tokenSecret, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			ucOpts := []usecase.Option{
				usecase.WithTokenSecret(tokenSecret),
			}

			llm, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llm != nil {
				ucOpts = append(ucOpts, usecase.WithLLM(llm))
				logging.Default().Info("AI assessment enabled", "provider", "gemini")
			} else {
				logging.Default().Warn("Gemini not configured, assessments will use manual review defaults")
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Slack notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Critical risk alerting enabled")
			}

			evidenceSvc, err := evidenceCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize evidence store")
			}

			uc := usecase.New(repo, ucOpts...)

			httpOpts := []httpctrl.Options{}
			if evidenceSvc != nil {
				httpOpts = append(httpOpts, httpctrl.WithEvidence(evidenceSvc))
				logging.Default().Info("Evidence endpoints enabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
