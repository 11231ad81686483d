package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/platform/mongodb"
)

var rootCmd = &cobra.Command{
	Use:   "biblio",
	Short: "Biblio CLI - lending library catalog management",
	Long: `Biblio manages a lending library catalog stored in MongoDB: authors,
categories, books, members and loans.

Examples:
  # Create collections and indexes
  biblio setup

  # Load the sample catalog into an empty store
  biblio seed

  # Search available science fiction titles
  biblio search "1984" --category Fantascienza --available

  # Check a book out and return it
  biblio loan create <member-id> <book-id> --days 14
  biblio loan return <loan-id>

  # Print the library summary
  biblio stats`,
}

var (
	// Global flags that apply to all commands
	mongoURI string
	database string
	verbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	rootCmd.PersistentFlags().StringVar(&database, "db", "biblioteca", "Database name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(statsCmd)
}

// cliLogger logs to stderr so command output on stdout stays parseable.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// withDatabase connects, runs fn against the selected database, and
// disconnects. Every command body goes through here.
func withDatabase(fn func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error) error {
	logger := cliLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, mongoURI, logger)
	if err != nil {
		return err
	}
	defer mongodb.Disconnect(context.Background(), client, logger)

	return fn(ctx, client.Database(database), logger)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
