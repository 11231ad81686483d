package member_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/member"
	"github.com/marcodallan/biblio/internal/platform/apperr"
)

type fakeRepository struct {
	member.Repository

	created  *member.Member
	activeBy map[primitive.ObjectID]bool
}

func (f *fakeRepository) CreateMember(_ context.Context, m *member.Member) error {
	m.ID = primitive.NewObjectID()
	f.created = m
	return nil
}

func (f *fakeRepository) SetMemberActive(_ context.Context, id primitive.ObjectID, active bool) error {
	if f.activeBy == nil {
		f.activeBy = map[primitive.ObjectID]bool{}
	}
	f.activeBy[id] = active
	return nil
}

func newService(repo *fakeRepository) *member.Service {
	return member.NewService(repo, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

func TestRegisterMember_StartsActive(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo)

	input := &member.Member{
		GivenName:  "Anna",
		FamilyName: "Rossi",
		Email:      "anna.rossi@example.com",
	}

	require.NoError(t, service.RegisterMember(context.Background(), input))
	require.NotNil(t, repo.created)
	assert.True(t, repo.created.Active)
	assert.False(t, repo.created.RegisteredAt.IsZero())
}

func TestRegisterMember_RequiresValidEmail(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo)

	err := service.RegisterMember(context.Background(), &member.Member{
		GivenName:  "Anna",
		FamilyName: "Rossi",
		Email:      "not-an-email",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Nil(t, repo.created)
}

func TestDeactivateMember(t *testing.T) {
	repo := &fakeRepository{}
	service := newService(repo)
	id := primitive.NewObjectID()

	require.NoError(t, service.DeactivateMember(context.Background(), id))
	active, ok := repo.activeBy[id]
	require.True(t, ok)
	assert.False(t, active)
}
