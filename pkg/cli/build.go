package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/spendgraph/spendgraph/pkg/cli/config"
	"github.com/spendgraph/spendgraph/pkg/domain/model"
	"github.com/spendgraph/spendgraph/pkg/domain/types"
	"github.com/spendgraph/spendgraph/pkg/repository/memory"
	"github.com/spendgraph/spendgraph/pkg/service/classify"
	"github.com/spendgraph/spendgraph/pkg/service/extract"
	"github.com/spendgraph/spendgraph/pkg/usecase"
	"github.com/spendgraph/spendgraph/pkg/utils/safe"
)

// cmdBuild builds one knowledge graph from a receipt JSON file and
// writes the graph JSON to stdout. No repository is touched; it is the
// offline counterpart of POST /api/graphs.
func cmdBuild() *cli.Command {
	var input string
	var userID string
	var appCfg config.App
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Receipt JSON file path (reads stdin when '-')",
			Value:       "-",
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "Owner of the built graph (overrides the receipt's user_id)",
			Sources:     cli.EnvVars("SPENDGRAPH_USER_ID"),
			Destination: &userID,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "build",
		Aliases: []string{"b"},
		Usage:   "Build a knowledge graph from a receipt JSON file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			receipt, err := readReceipt(input)
			if err != nil {
				return err
			}
			if userID != "" {
				receipt.UserID = types.UserID(userID)
			}

			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			uc := usecase.New(memory.New(),
				usecase.WithExtractor(extract.New(llmClient)),
				usecase.WithClassifier(classify.New(llmClient, app.ClassifierOptions()...)),
				usecase.WithSyncPersist(),
			)

			graph, err := uc.BuildFromReceipt(ctx, receipt)
			if err != nil {
				return goerr.Wrap(err, "failed to build knowledge graph")
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(graph); err != nil {
				return goerr.Wrap(err, "failed to encode graph")
			}

			return nil
		},
	}
}

func readReceipt(path string) (*model.Receipt, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open receipt file", goerr.V("path", path))
		}
		defer safe.Close(context.Background(), f)
		r = f
	}

	var receipt model.Receipt
	if err := json.NewDecoder(r).Decode(&receipt); err != nil {
		return nil, goerr.Wrap(err, "failed to decode receipt JSON", goerr.V("path", path))
	}
	if receipt.ID == "" {
		receipt.ID = types.NewReceiptID()
	}

	return &receipt, nil
}
