package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the library summary",
	Long: `Stats prints collection tallies and the most-borrowed ranking as
JSON. It always reads the store directly, never a cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			service := stats.NewService(stats.NewMongoRepository(db), logger)

			summary, err := service.Summary(ctx)
			if err != nil {
				return err
			}
			return printJSON(summary)
		})
	},
}
