package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("SPENDGRAPH_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Value:       "(default)",
				Sources:     cli.EnvVars("SPENDGRAPH_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			client, err := fireconf.New(ctx, projectID, databaseID, getIndexConfig(),
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun))
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}

			if dryRun {
				logger.Info("Dry run completed, no changes applied")
			} else {
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "knowledge_graphs",
				Indexes: []fireconf.Index{
					// ListByUser: user_id ASC, updated_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "user_id", Order: fireconf.OrderAscending},
							{Path: "updated_at", Order: fireconf.OrderDescending},
						},
					},
					// GetByName: user_id ASC, name ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "user_id", Order: fireconf.OrderAscending},
							{Path: "name", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
