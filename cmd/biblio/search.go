package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/catalog/category"
)

var (
	searchCategory  string
	searchAvailable bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the catalog",
	Long: `Search matches books by title text, category name and availability.
All criteria are combined; an unknown category simply matches nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			bookService := book.NewService(book.NewMongoRepository(db), category.NewMongoRepository(db), logger)

			filter := book.SearchFilter{CategoryName: searchCategory}
			if len(args) > 0 {
				filter.Text = args[0]
			}
			if cmd.Flags().Changed("available") {
				filter.AvailableOnly = &searchAvailable
			}

			summaries, err := bookService.Search(ctx, filter)
			if err != nil {
				return err
			}

			if searchJSON {
				return printJSON(summaries)
			}

			if len(summaries) == 0 {
				fmt.Println("No books found.")
				return nil
			}

			for _, s := range summaries {
				state := "available"
				if !s.Available {
					state = "unavailable"
				}
				categoryName := ""
				if s.Category != nil {
					categoryName = *s.Category
				}
				fmt.Printf("%s  %q (%d) %s [%s] copies=%d %s\n",
					s.ID.Hex(), s.Title, s.PublicationYear,
					strings.Join(s.Authors, ", "), categoryName, s.CopyCount, state)
			}
			return nil
		})
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Filter by category name")
	searchCmd.Flags().BoolVarP(&searchAvailable, "available", "a", true, "Filter by availability")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}
