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

	"github.com/spendgraph/spendgraph/pkg/cli/config"
	httpctrl "github.com/spendgraph/spendgraph/pkg/controller/http"
	"github.com/spendgraph/spendgraph/pkg/service/classify"
	"github.com/spendgraph/spendgraph/pkg/service/extract"
	"github.com/spendgraph/spendgraph/pkg/usecase"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SPENDGRAPH_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient == nil {
				logging.Default().Info("Gemini not configured, using fallback extraction and classification")
			}

			uc := usecase.New(repo,
				usecase.WithExtractor(extract.New(llmClient)),
				usecase.WithClassifier(classify.New(llmClient, app.ClassifierOptions()...)),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
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
