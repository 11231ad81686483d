package stats

import "go.mongodb.org/mongo-driver/bson/primitive"

// Stats is the library-wide summary: collection tallies plus the
// most-borrowed ranking. Loan counts include returned loans, so the
// ranking reflects all-time popularity.
type Stats struct {
	TotalBooks     int64     `json:"total_books"`
	AvailableBooks int64     `json:"available_books"`
	ActiveLoans    int64     `json:"active_loans"`
	OverdueLoans   int64     `json:"overdue_loans"`
	ActiveMembers  int64     `json:"active_members"`
	TopBooks       []TopBook `json:"top_books"`
}

// TopBook is one entry of the most-borrowed ranking.
type TopBook struct {
	BookID    primitive.ObjectID `json:"book_id"`
	Title     string             `json:"title"`
	LoanCount int64              `json:"loan_count"`
}
