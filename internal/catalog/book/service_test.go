package book_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/pkg/pointer"
)

// fakeRepository records the SearchSpec it was queried with and returns canned results.
type fakeRepository struct {
	book.Repository

	lastSpec  book.SearchSpec
	summaries []*book.Summary
	searchErr error
}

func (f *fakeRepository) SearchBooks(_ context.Context, spec book.SearchSpec) ([]*book.Summary, error) {
	f.lastSpec = spec
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.summaries, nil
}

// fakeResolver resolves a single known category name.
type fakeResolver struct {
	known map[string]primitive.ObjectID
	err   error
}

func (f *fakeResolver) ResolveCategoryID(_ context.Context, name string) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	if id, ok := f.known[name]; ok {
		return id, nil
	}
	return primitive.NilObjectID, apperr.NotFound("Category")
}

func newSearchService(repo *fakeRepository, resolver *fakeResolver) *book.Service {
	return book.NewService(repo, resolver, testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

/*
TestSearch_FiltersAreConjunctive verifies that every provided criterion ends
up in the resolved spec handed to the store.
*/
func TestSearch_FiltersAreConjunctive(t *testing.T) {
	categoryID := primitive.NewObjectID()
	repo := &fakeRepository{summaries: []*book.Summary{}}
	resolver := &fakeResolver{known: map[string]primitive.ObjectID{"Fantascienza": categoryID}}
	service := newSearchService(repo, resolver)

	_, err := service.Search(context.Background(), book.SearchFilter{
		Text:          "1984",
		CategoryName:  "Fantascienza",
		AvailableOnly: pointer.To(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "1984", repo.lastSpec.Text)
	require.NotNil(t, repo.lastSpec.CategoryID)
	assert.Equal(t, categoryID, *repo.lastSpec.CategoryID)
	require.NotNil(t, repo.lastSpec.AvailableOnly)
	assert.True(t, *repo.lastSpec.AvailableOnly)
}

/*
TestSearch_UnknownCategoryShortCircuits checks that an unknown category name
returns an empty result without touching the book collection.
*/
func TestSearch_UnknownCategoryShortCircuits(t *testing.T) {
	repo := &fakeRepository{summaries: []*book.Summary{{Title: "should not appear"}}}
	resolver := &fakeResolver{known: map[string]primitive.ObjectID{}}
	service := newSearchService(repo, resolver)

	summaries, err := service.Search(context.Background(), book.SearchFilter{CategoryName: "Inesistente"})

	require.NoError(t, err)
	assert.Empty(t, summaries)
	// The store must not have been queried at all.
	assert.Equal(t, book.SearchSpec{}, repo.lastSpec)
}

/*
TestSearch_StoreErrorDegrades verifies that a failing store yields an empty
sequence plus the reported error instead of a panic or nil slice.
*/
func TestSearch_StoreErrorDegrades(t *testing.T) {
	storeFailure := apperr.StoreError(errors.New("connection reset"))
	repo := &fakeRepository{searchErr: storeFailure}
	service := newSearchService(repo, &fakeResolver{})

	summaries, err := service.Search(context.Background(), book.SearchFilter{Text: "rosa"})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "STORE_ERROR"))
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

/*
TestSearch_NormalizesText checks that the query text is canonicalized before
reaching the store.
*/
func TestSearch_NormalizesText(t *testing.T) {
	repo := &fakeRepository{}
	service := newSearchService(repo, &fakeResolver{})

	_, err := service.Search(context.Background(), book.SearchFilter{Text: "  le   città  "})

	require.NoError(t, err)
	assert.Equal(t, "le città", repo.lastSpec.Text)
}

/*
TestCreateBook_DerivesAvailability verifies the copy-count/availability
invariant at creation time.
*/
func TestCreateBook_DerivesAvailability(t *testing.T) {
	tests := []struct {
		name      string
		copyCount int
		available bool
	}{
		{"in_stock", 3, true},
		{"out_of_stock", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &createRecorder{}
			service := book.NewService(repo, &fakeResolver{}, testLogger())

			input := &book.Book{
				Title:      "I Promessi Sposi",
				CopyCount:  tt.copyCount,
				CategoryID: primitive.NewObjectID(),
				AuthorIDs:  []primitive.ObjectID{primitive.NewObjectID()},
				// Deliberately wrong: the service must recompute it.
				Available: !tt.available,
			}

			require.NoError(t, service.CreateBook(context.Background(), input))
			require.NotNil(t, repo.created)
			assert.Equal(t, tt.available, repo.created.Available)
		})
	}
}

/*
TestCreateBook_Validation rejects books without a title or authors.
*/
func TestCreateBook_Validation(t *testing.T) {
	repo := &createRecorder{}
	service := book.NewService(repo, &fakeResolver{}, testLogger())

	err := service.CreateBook(context.Background(), &book.Book{CopyCount: 1})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Nil(t, repo.created)
}

// createRecorder captures the book handed to CreateBook.
type createRecorder struct {
	book.Repository

	created *book.Book
}

func (r *createRecorder) CreateBook(_ context.Context, b *book.Book) error {
	r.created = b
	return nil
}
