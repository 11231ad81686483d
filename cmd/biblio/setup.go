package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/platform/bootstrap"
	"github.com/marcodallan/biblio/internal/seed"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the catalog collections and indexes",
	Long: `Setup creates every collection and index the catalog needs. It is
idempotent: existing collections and indexes are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			if err := bootstrap.EnsureSchema(ctx, db, logger); err != nil {
				return err
			}
			fmt.Println("Schema ready.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog into an empty store",
	Long: `Seed creates the schema and loads a small fixed catalog: well-known
titles, their authors and categories, a few members and loans. A store that
already holds books is left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			if err := bootstrap.EnsureSchema(ctx, db, logger); err != nil {
				return err
			}
			if err := seed.NewSeeder(db, logger).Run(ctx); err != nil {
				return err
			}
			fmt.Println("Sample data loaded.")
			return nil
		})
	},
}
