package loan_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/loan"
	"github.com/marcodallan/biblio/internal/member"
	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/platform/storeerr"
)

// fakeLoanStore keeps loans in insertion order, in memory.
type fakeLoanStore struct {
	loans     []*loan.Loan
	createErr error
}

func (f *fakeLoanStore) ListLoans(_ context.Context, filter loan.Filter, _, _ int) ([]*loan.Loan, int, error) {
	var out []*loan.Loan
	for _, l := range f.loans {
		if filter.MemberID != nil && l.MemberID != *filter.MemberID {
			continue
		}
		if filter.State != "" && l.State != filter.State {
			continue
		}
		out = append(out, l)
	}
	return out, len(out), nil
}

func (f *fakeLoanStore) GetLoan(_ context.Context, id primitive.ObjectID) (*loan.Loan, error) {
	for _, l := range f.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, storeerr.ErrNotFound
}

func (f *fakeLoanStore) CreateLoan(_ context.Context, l *loan.Loan) error {
	if f.createErr != nil {
		return f.createErr
	}
	l.ID = primitive.NewObjectID()
	f.loans = append(f.loans, l)
	return nil
}

func (f *fakeLoanStore) MarkReturned(_ context.Context, id primitive.ObjectID, returnedAt time.Time) (bool, error) {
	for _, l := range f.loans {
		if l.ID != id {
			continue
		}
		if l.State != loan.StateActive {
			return false, nil
		}
		l.State = loan.StateReturned
		l.ReturnedAt = &returnedAt
		return true, nil
	}
	return false, nil
}

// fakeCatalog emulates the conditional copy decrement of the real store.
type fakeCatalog struct {
	books map[primitive.ObjectID]*book.Book

	decrementErr   error
	forceExhausted bool
}

func (f *fakeCatalog) GetBook(_ context.Context, id primitive.ObjectID) (*book.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, storeerr.ErrNotFound
}

func (f *fakeCatalog) DecrementCopies(_ context.Context, id primitive.ObjectID) (bool, error) {
	if f.decrementErr != nil {
		return false, f.decrementErr
	}
	if f.forceExhausted {
		return false, nil
	}
	b, ok := f.books[id]
	if !ok || b.CopyCount <= 0 {
		return false, nil
	}
	b.CopyCount--
	b.Available = b.CopyCount > 0
	return true, nil
}

func (f *fakeCatalog) IncrementCopies(_ context.Context, id primitive.ObjectID) error {
	b, ok := f.books[id]
	if !ok {
		return storeerr.ErrNotFound
	}
	b.CopyCount++
	b.Available = true
	return nil
}

type fakeDirectory struct {
	members map[primitive.ObjectID]*member.Member
}

func (f *fakeDirectory) GetMember(_ context.Context, id primitive.ObjectID) (*member.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, storeerr.ErrNotFound
}

// fixture wires a service around one member and one book.
type fixture struct {
	service  *loan.Service
	store    *fakeLoanStore
	catalog  *fakeCatalog
	memberID primitive.ObjectID
	bookID   primitive.ObjectID
	now      time.Time
}

func newFixture(t *testing.T, copies int) *fixture {
	t.Helper()

	memberID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	store := &fakeLoanStore{}
	catalog := &fakeCatalog{books: map[primitive.ObjectID]*book.Book{
		bookID: {ID: bookID, Title: "1984", CopyCount: copies, Available: copies > 0},
	}}
	directory := &fakeDirectory{members: map[primitive.ObjectID]*member.Member{
		memberID: {ID: memberID, GivenName: "Anna", FamilyName: "Rossi", Active: true},
	}}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service := loan.NewService(store, catalog, directory, logger, loan.WithClock(func() time.Time { return now }))

	return &fixture{
		service:  service,
		store:    store,
		catalog:  catalog,
		memberID: memberID,
		bookID:   bookID,
		now:      now,
	}
}

func TestCreateLoan_Success(t *testing.T) {
	f := newFixture(t, 3)

	result, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, f.now.AddDate(0, 0, 30), result.DueAt)

	require.Len(t, f.store.loans, 1)
	created := f.store.loans[0]
	assert.Equal(t, result.LoanID, created.ID)
	assert.Equal(t, loan.StateActive, created.State)
	assert.Equal(t, f.now, created.StartedAt)

	assert.Equal(t, 2, f.catalog.books[f.bookID].CopyCount)
	assert.True(t, f.catalog.books[f.bookID].Available)
}

func TestCreateLoan_CustomPeriod(t *testing.T) {
	f := newFixture(t, 1)

	result, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 7)

	require.NoError(t, err)
	assert.Equal(t, f.now.AddDate(0, 0, 7), result.DueAt)
}

// Checking out every copy must drain the inventory to exactly zero and then
// refuse further checkouts: copies are conserved.
func TestCreateLoan_DrainsInventoryThenRefuses(t *testing.T) {
	f := newFixture(t, 3)

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)
		require.NoError(t, err)
	}

	b := f.catalog.books[f.bookID]
	assert.Equal(t, 0, b.CopyCount)
	assert.False(t, b.Available)

	_, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "BOOK_UNAVAILABLE"))

	assert.Equal(t, 0, b.CopyCount)
	assert.Len(t, f.store.loans, 3)
}

func TestCreateLoan_MemberNotFound(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.service.CreateLoan(context.Background(), primitive.NewObjectID(), f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, f.store.loans)
	assert.Equal(t, 2, f.catalog.books[f.bookID].CopyCount)
}

func TestCreateLoan_MemberInactive(t *testing.T) {
	f := newFixture(t, 2)
	inactiveID := primitive.NewObjectID()
	directory := &fakeDirectory{members: map[primitive.ObjectID]*member.Member{
		inactiveID: {ID: inactiveID, Active: false},
	}}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	service := loan.NewService(f.store, f.catalog, directory, logger)

	_, err := service.CreateLoan(context.Background(), inactiveID, f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "MEMBER_INACTIVE"))
	assert.Empty(t, f.store.loans)
	assert.Equal(t, 2, f.catalog.books[f.bookID].CopyCount)
}

func TestCreateLoan_BookNotFound(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.service.CreateLoan(context.Background(), f.memberID, primitive.NewObjectID(), 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, f.store.loans)
}

func TestCreateLoan_BookExhausted(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "BOOK_UNAVAILABLE"))
	assert.Empty(t, f.store.loans)
}

// When the guard on the decrement fails after the loan record was inserted
// (another checkout took the last copy in between), the checkout reports
// unavailability and the provisional record is left behind.
func TestCreateLoan_LostRaceOnLastCopy(t *testing.T) {
	f := newFixture(t, 1)
	f.catalog.forceExhausted = true

	_, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "BOOK_UNAVAILABLE"))
	assert.Len(t, f.store.loans, 1)
	assert.Equal(t, 1, f.catalog.books[f.bookID].CopyCount)
}

func TestCreateLoan_DecrementFailureIsPartial(t *testing.T) {
	f := newFixture(t, 1)
	f.catalog.decrementErr = apperr.StoreError(errors.New("write concern timeout"))

	_, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "PARTIAL_FAILURE"))
	assert.Len(t, f.store.loans, 1)
}

func TestCreateLoan_RejectsZeroIDs(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.CreateLoan(context.Background(), primitive.NilObjectID, f.bookID, 0)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

func TestReturnLoan_Success(t *testing.T) {
	f := newFixture(t, 2)

	result, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, f.catalog.books[f.bookID].CopyCount)

	require.NoError(t, f.service.ReturnLoan(context.Background(), result.LoanID))

	returned := f.store.loans[0]
	assert.Equal(t, loan.StateReturned, returned.State)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, f.now, *returned.ReturnedAt)
	assert.Equal(t, 2, f.catalog.books[f.bookID].CopyCount)
	assert.True(t, f.catalog.books[f.bookID].Available)
}

func TestReturnLoan_Twice(t *testing.T) {
	f := newFixture(t, 2)

	result, err := f.service.CreateLoan(context.Background(), f.memberID, f.bookID, 0)
	require.NoError(t, err)
	require.NoError(t, f.service.ReturnLoan(context.Background(), result.LoanID))

	err = f.service.ReturnLoan(context.Background(), result.LoanID)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "LOAN_ALREADY_RETURNED"))
	// A double return must not inflate the inventory.
	assert.Equal(t, 2, f.catalog.books[f.bookID].CopyCount)
}

func TestReturnLoan_NotFound(t *testing.T) {
	f := newFixture(t, 1)

	err := f.service.ReturnLoan(context.Background(), primitive.NewObjectID())

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
