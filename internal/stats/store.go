package stats

import (
	"context"
	"time"
)

type Repository interface {
	CountBooks(context context.Context) (int64, error)
	CountAvailableBooks(context context.Context) (int64, error)
	CountActiveLoans(context context.Context) (int64, error)
	CountOverdueLoans(context context.Context, now time.Time) (int64, error)
	CountActiveMembers(context context.Context) (int64, error)
	TopBorrowedBooks(context context.Context, limit int) ([]TopBook, error)
}
