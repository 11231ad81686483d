package loan

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/platform/constants"
	"github.com/marcodallan/biblio/internal/platform/validate"
)

// Service runs the lending desk: checkout, return, and loan listings.
//
// # Checkout ordering
//
// A checkout writes two documents: the loan record first, then the
// conditional copy decrement on the book. There is no cross-document
// transaction; if the decrement step reports the book exhausted after the
// loan was inserted, the checkout fails as unavailable and the provisional
// loan record stays behind. A stale open loan never understates the copy
// count, so the inventory invariant holds either way.
type Service struct {
	repo    Repository
	books   BookCatalog
	members MemberDirectory
	logger  *slog.Logger
	now     func() time.Time

	defaultPeriodDays int
}

// Option configures optional Service behaviour.
type Option func(*Service)

// WithClock replaces the wall clock. Tests use it to pin loan timestamps.
func WithClock(now func() time.Time) Option {
	return func(service *Service) {
		service.now = now
	}
}

// WithDefaultPeriod overrides the lending period applied when a checkout
// does not name one.
func WithDefaultPeriod(days int) Option {
	return func(service *Service) {
		if days > 0 {
			service.defaultPeriodDays = days
		}
	}
}

func NewService(repo Repository, books BookCatalog, members MemberDirectory, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		repo:    repo,
		books:   books,
		members: members,
		logger:  logger,
		now:     time.Now,

		defaultPeriodDays: constants.DefaultLoanPeriodDays,
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (service *Service) ListLoans(context context.Context, filter Filter, limit, offset int) ([]*Loan, int, error) {
	return service.repo.ListLoans(context, filter, limit, offset)
}

func (service *Service) GetLoan(context context.Context, id primitive.ObjectID) (*Loan, error) {
	return service.repo.GetLoan(context, id)
}

// CreateLoan checks a copy of a book out to a member.
//
// periodDays <= 0 selects the default lending period. The member must exist
// and be active, and the book must exist with at least one copy on the
// shelf; otherwise the checkout fails with NOT_FOUND, MEMBER_INACTIVE or
// BOOK_UNAVAILABLE and nothing is taken from the inventory.
func (service *Service) CreateLoan(context context.Context, memberID, bookID primitive.ObjectID, periodDays int) (*Result, error) {
	validator := &validate.Validator{}
	validator.
		Custom(FieldMemberID, memberID.IsZero(), "A member is required").
		Custom(FieldBookID, bookID.IsZero(), "A book is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if periodDays <= 0 {
		periodDays = service.defaultPeriodDays
	}

	b, err := service.books.GetBook(context, bookID)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil, apperr.NotFound("Book")
		}
		return nil, err
	}
	if b.CopyCount <= 0 {
		return nil, apperr.InvalidState("BOOK_UNAVAILABLE", "Book has no available copies")
	}

	m, err := service.members.GetMember(context, memberID)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return nil, apperr.NotFound("Member")
		}
		return nil, err
	}
	if !m.Active {
		return nil, apperr.InvalidState("MEMBER_INACTIVE", "Member is not active")
	}

	now := service.now().UTC()
	l := &Loan{
		MemberID:  memberID,
		BookID:    bookID,
		StartedAt: now,
		DueAt:     now.AddDate(0, 0, periodDays),
		State:     StateActive,
		CreatedAt: now,
	}

	if err := service.repo.CreateLoan(context, l); err != nil {
		return nil, err
	}

	// The guard inside DecrementCopies decides availability, not the
	// read above: another checkout may have taken the last copy since.
	taken, err := service.books.DecrementCopies(context, bookID)
	if err != nil {
		service.logger.Error("loan_decrement_failed",
			slog.String("loan_id", l.ID.Hex()),
			slog.String("book_id", bookID.Hex()),
			slog.Any("error", err),
		)
		return nil, apperr.PartialFailure("Loan was recorded but the copy count could not be updated", err)
	}
	if !taken {
		service.logger.Warn("loan_lost_last_copy",
			slog.String("loan_id", l.ID.Hex()),
			slog.String("book_id", bookID.Hex()),
		)
		return nil, apperr.InvalidState("BOOK_UNAVAILABLE", "Book has no available copies")
	}

	service.logger.Info("loan_created",
		slog.String("loan_id", l.ID.Hex()),
		slog.String("member_id", memberID.Hex()),
		slog.String("book_id", bookID.Hex()),
		slog.Time("due_at", l.DueAt),
	)

	return &Result{LoanID: l.ID, DueAt: l.DueAt}, nil
}

// ReturnLoan closes an active loan and puts the copy back on the shelf.
func (service *Service) ReturnLoan(context context.Context, loanID primitive.ObjectID) error {
	l, err := service.repo.GetLoan(context, loanID)
	if err != nil {
		if apperr.IsCode(err, "NOT_FOUND") {
			return apperr.NotFound("Loan")
		}
		return err
	}

	returnedAt := service.now().UTC()
	closed, err := service.repo.MarkReturned(context, loanID, returnedAt)
	if err != nil {
		return err
	}
	if !closed {
		return apperr.InvalidState("LOAN_ALREADY_RETURNED", "Loan has already been returned")
	}

	if err := service.books.IncrementCopies(context, l.BookID); err != nil {
		service.logger.Error("loan_restock_failed",
			slog.String("loan_id", loanID.Hex()),
			slog.String("book_id", l.BookID.Hex()),
			slog.Any("error", err),
		)
		return apperr.PartialFailure("Loan was closed but the copy count could not be updated", err)
	}

	service.logger.Info("loan_returned",
		slog.String("loan_id", loanID.Hex()),
		slog.String("book_id", l.BookID.Hex()),
	)
	return nil
}
