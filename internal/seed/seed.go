// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

/*
Package seed loads a small fixed catalog into an empty store: a handful of
well-known titles, their authors and categories, a few members and open
loans. It is meant for development and demos, not production.
*/
package seed

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/catalog/author"
	"github.com/marcodallan/biblio/internal/catalog/book"
	"github.com/marcodallan/biblio/internal/catalog/category"
	"github.com/marcodallan/biblio/internal/loan"
	"github.com/marcodallan/biblio/internal/member"
	"github.com/marcodallan/biblio/internal/platform/schema"
	"github.com/marcodallan/biblio/internal/platform/storeerr"
	"github.com/marcodallan/biblio/pkg/pointer"
)

type Seeder struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewSeeder(db *mongo.Database, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Run loads the fixtures. A store that already holds books is left alone,
// so Run is safe to call on every startup.
func (seeder *Seeder) Run(context context.Context) error {
	total, err := seeder.db.Collection(schema.RefBook.Collection).CountDocuments(context, bson.D{})
	if err != nil {
		return storeerr.Wrap(err, "seed_count_books")
	}
	if total > 0 {
		seeder.logger.Info("seed_skipped", slog.Int64("existing_books", total))
		return nil
	}

	now := time.Now().UTC()

	categoryIDs, err := seeder.insertCategories(context, now)
	if err != nil {
		return err
	}

	authorIDs, err := seeder.insertAuthors(context, now)
	if err != nil {
		return err
	}

	bookIDs, err := seeder.insertBooks(context, now, categoryIDs, authorIDs)
	if err != nil {
		return err
	}

	memberIDs, err := seeder.insertMembers(context, now)
	if err != nil {
		return err
	}

	if err := seeder.insertLoans(context, now, memberIDs, bookIDs); err != nil {
		return err
	}

	seeder.logger.Info("seed_completed",
		slog.Int("categories", len(categoryIDs)),
		slog.Int("authors", len(authorIDs)),
		slog.Int("books", len(bookIDs)),
		slog.Int("members", len(memberIDs)),
	)
	return nil
}

func (seeder *Seeder) insertCategories(context context.Context, now time.Time) ([]primitive.ObjectID, error) {
	categories := []*category.Category{
		{Name: "Narrativa Italiana", Description: "Opere di narrativa di autori italiani"},
		{Name: "Fantascienza", Description: "Romanzi e racconti di fantascienza"},
		{Name: "Saggistica", Description: "Saggi su vari argomenti"},
		{Name: "Poesia", Description: "Raccolte poetiche"},
		{Name: "Storia", Description: "Libri di storia e biografie"},
		{Name: "Filosofia", Description: "Testi filosofici e di pensiero"},
		{Name: "Gialli", Description: "Romanzi gialli e thriller"},
		{Name: "Classici", Description: "I grandi classici della letteratura"},
	}

	documents := make([]any, len(categories))
	for i, c := range categories {
		c.CreatedAt = now
		documents[i] = c
	}

	return seeder.insertMany(context, schema.RefCategory.Collection, documents, "seed_categories")
}

func (seeder *Seeder) insertAuthors(context context.Context, now time.Time) ([]primitive.ObjectID, error) {
	authors := []*author.Author{
		{GivenName: "Alessandro", FamilyName: "Manzoni", BirthDate: date(1785, time.March, 7), Nationality: "Italiana"},
		{GivenName: "Italo", FamilyName: "Calvino", BirthDate: date(1923, time.October, 15), Nationality: "Italiana"},
		{GivenName: "Umberto", FamilyName: "Eco", BirthDate: date(1932, time.January, 5), Nationality: "Italiana"},
		{GivenName: "Elena", FamilyName: "Ferrante", Nationality: "Italiana"},
		{GivenName: "Roberto", FamilyName: "Saviano", BirthDate: date(1979, time.September, 22), Nationality: "Italiana"},
		{GivenName: "Primo", FamilyName: "Levi", BirthDate: date(1919, time.July, 31), Nationality: "Italiana"},
		{GivenName: "Gabriel", FamilyName: "García Márquez", BirthDate: date(1927, time.March, 6), Nationality: "Colombiana"},
		{GivenName: "George", FamilyName: "Orwell", BirthDate: date(1903, time.June, 25), Nationality: "Britannica"},
		{GivenName: "Agatha", FamilyName: "Christie", BirthDate: date(1890, time.September, 15), Nationality: "Britannica"},
		{GivenName: "Isaac", FamilyName: "Asimov", BirthDate: date(1920, time.January, 2), Nationality: "Americana"},
	}

	documents := make([]any, len(authors))
	for i, a := range authors {
		a.CreatedAt = now
		documents[i] = a
	}

	return seeder.insertMany(context, schema.RefAuthor.Collection, documents, "seed_authors")
}

func (seeder *Seeder) insertBooks(context context.Context, now time.Time, categoryIDs, authorIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	books := []*book.Book{
		{
			Title:           "I Promessi Sposi",
			ISBN:            "9788804123456",
			PublicationYear: 1827,
			PageCount:       672,
			Language:        "Italiano",
			Publisher:       "Mondadori",
			CategoryID:      categoryIDs[0],
			AuthorIDs:       []primitive.ObjectID{authorIDs[0]},
			CopyCount:       3,
		},
		{
			Title:           "Le Città Invisibili",
			ISBN:            "9788806234567",
			PublicationYear: 1972,
			PageCount:       164,
			Language:        "Italiano",
			Publisher:       "Einaudi",
			CategoryID:      categoryIDs[0],
			AuthorIDs:       []primitive.ObjectID{authorIDs[1]},
			CopyCount:       2,
		},
		{
			Title:           "Il Nome della Rosa",
			ISBN:            "9788845292344",
			PublicationYear: 1980,
			PageCount:       503,
			Language:        "Italiano",
			Publisher:       "Bompiani",
			CategoryID:      categoryIDs[6],
			AuthorIDs:       []primitive.ObjectID{authorIDs[2]},
			CopyCount:       4,
		},
		{
			// All copies are out on loan, see insertLoans.
			Title:           "L'Amica Geniale",
			ISBN:            "9788866345678",
			PublicationYear: 2011,
			PageCount:       331,
			Language:        "Italiano",
			Publisher:       "E/O",
			CategoryID:      categoryIDs[0],
			AuthorIDs:       []primitive.ObjectID{authorIDs[3]},
			CopyCount:       0,
		},
		{
			Title:           "1984",
			ISBN:            "9780451524935",
			PublicationYear: 1949,
			PageCount:       328,
			Language:        "Inglese",
			Publisher:       "Secker & Warburg",
			CategoryID:      categoryIDs[1],
			AuthorIDs:       []primitive.ObjectID{authorIDs[7]},
			CopyCount:       3,
		},
	}

	documents := make([]any, len(books))
	for i, b := range books {
		b.Available = b.CopyCount > 0
		b.CreatedAt = now
		documents[i] = b
	}

	return seeder.insertMany(context, schema.RefBook.Collection, documents, "seed_books")
}

func (seeder *Seeder) insertMembers(context context.Context, now time.Time) ([]primitive.ObjectID, error) {
	members := []*member.Member{
		{GivenName: "Anna", FamilyName: "Rossi", Email: "anna.rossi@example.com", Phone: "+39 02 1234001", Address: "Via Roma 1, Milano"},
		{GivenName: "Luca", FamilyName: "Bianchi", Email: "luca.bianchi@example.com", Phone: "+39 02 1234002", Address: "Via Garibaldi 12, Torino"},
		{GivenName: "Giulia", FamilyName: "Verdi", Email: "giulia.verdi@example.com", Phone: "+39 06 1234003", Address: "Via Appia 8, Roma"},
		{GivenName: "Marco", FamilyName: "Ferrari", Email: "marco.ferrari@example.com", Phone: "+39 055 1234004", Address: "Via dei Servi 3, Firenze"},
		{GivenName: "Sara", FamilyName: "Russo", Email: "sara.russo@example.com", Phone: "+39 081 1234005", Address: "Via Toledo 21, Napoli"},
	}

	documents := make([]any, len(members))
	for i, m := range members {
		m.RegisteredAt = now.AddDate(0, -len(members)+i, 0)
		m.Active = true
		m.CreatedAt = now
		documents[i] = m
	}

	return seeder.insertMany(context, schema.RefMember.Collection, documents, "seed_members")
}

// insertLoans opens one overdue loan for the single copy of "L'Amica
// Geniale" and records a finished loan of "Il Nome della Rosa". Copy counts
// in insertBooks already account for the open loan.
func (seeder *Seeder) insertLoans(context context.Context, now time.Time, memberIDs, bookIDs []primitive.ObjectID) error {
	startedOverdue := now.AddDate(0, 0, -45)
	startedReturned := now.AddDate(0, 0, -20)
	returnedAt := startedReturned.AddDate(0, 0, 9)

	loans := []*loan.Loan{
		{
			MemberID:  memberIDs[0],
			BookID:    bookIDs[3],
			StartedAt: startedOverdue,
			DueAt:     startedOverdue.AddDate(0, 0, 30),
			State:     loan.StateActive,
			CreatedAt: now,
		},
		{
			MemberID:   memberIDs[1],
			BookID:     bookIDs[2],
			StartedAt:  startedReturned,
			DueAt:      startedReturned.AddDate(0, 0, 30),
			State:      loan.StateReturned,
			ReturnedAt: &returnedAt,
			CreatedAt:  now,
		},
	}

	documents := make([]any, len(loans))
	for i, l := range loans {
		documents[i] = l
	}

	_, err := seeder.insertMany(context, schema.RefLoan.Collection, documents, "seed_loans")
	return err
}

func (seeder *Seeder) insertMany(context context.Context, collection string, documents []any, action string) ([]primitive.ObjectID, error) {
	result, err := seeder.db.Collection(collection).InsertMany(context, documents)
	if err != nil {
		return nil, storeerr.Wrap(err, action)
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, inserted := range result.InsertedIDs {
		if id, ok := inserted.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func date(year int, month time.Month, day int) *time.Time {
	return pointer.To(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
