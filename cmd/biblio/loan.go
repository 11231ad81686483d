package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/loan"
	"github.com/marcodallan/biblio/internal/member"
)

var loanDays int

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Manage loans",
}

var loanCreateCmd = &cobra.Command{
	Use:   "create <member-id> <book-id>",
	Short: "Check a book out to a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		memberID, err := primitive.ObjectIDFromHex(args[0])
		if err != nil {
			return fmt.Errorf("invalid member id %q: %w", args[0], err)
		}
		bookID, err := primitive.ObjectIDFromHex(args[1])
		if err != nil {
			return fmt.Errorf("invalid book id %q: %w", args[1], err)
		}

		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			service := newLoanService(db, logger)

			result, err := service.CreateLoan(ctx, memberID, bookID, loanDays)
			if err != nil {
				return err
			}

			fmt.Printf("Loan %s created, due %s\n", result.LoanID.Hex(), result.DueAt.Format("2006-01-02"))
			return nil
		})
	},
}

var loanReturnCmd = &cobra.Command{
	Use:   "return <loan-id>",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loanID, err := primitive.ObjectIDFromHex(args[0])
		if err != nil {
			return fmt.Errorf("invalid loan id %q: %w", args[0], err)
		}

		return withDatabase(func(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
			service := newLoanService(db, logger)

			if err := service.ReturnLoan(ctx, loanID); err != nil {
				return err
			}

			fmt.Printf("Loan %s returned.\n", loanID.Hex())
			return nil
		})
	},
}

func newLoanService(db *mongo.Database, logger *slog.Logger) *loan.Service {
	return loan.NewService(
		loan.NewMongoRepository(db),
		book.NewMongoRepository(db),
		member.NewMongoRepository(db),
		logger,
	)
}

func init() {
	loanCreateCmd.Flags().IntVar(&loanDays, "days", 0, "Lending period in days (0 uses the default)")

	loanCmd.AddCommand(loanCreateCmd)
	loanCmd.AddCommand(loanReturnCmd)
}
