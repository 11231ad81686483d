package loan

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/member"
)

type Repository interface {
	ListLoans(context context.Context, filter Filter, limit, offset int) ([]*Loan, int, error)
	GetLoan(context context.Context, id primitive.ObjectID) (*Loan, error)
	CreateLoan(context context.Context, l *Loan) error

	// MarkReturned closes an active loan. It returns false without error
	// when the loan exists but is already closed.
	MarkReturned(context context.Context, id primitive.ObjectID, returnedAt time.Time) (bool, error)
}

// BookCatalog is the slice of the catalog the lending desk needs:
// existence checks and the copy inventory.
type BookCatalog interface {
	GetBook(context context.Context, id primitive.ObjectID) (*book.Book, error)
	DecrementCopies(context context.Context, id primitive.ObjectID) (bool, error)
	IncrementCopies(context context.Context, id primitive.ObjectID) error
}

// MemberDirectory resolves members for eligibility checks.
type MemberDirectory interface {
	GetMember(context context.Context, id primitive.ObjectID) (*member.Member, error)
}
