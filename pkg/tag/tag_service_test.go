package tag

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (TagService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	return NewTagService(NewTagRepository(db), enforcer), db
}

func TestCreateTag(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := testutil.Requester(testutil.CreateUser(t, db, "admin", domain.RoleAdmin))

	created, err := svc.CreateTag(ctx, admin, domain.CreateTagRequest{Name: "Lunch", Slug: "lunch", Color: "#e26c2d"})
	require.NoError(t, err)
	assert.Equal(t, "#E26C2D", created.Color)

	_, err = svc.CreateTag(ctx, admin, domain.CreateTagRequest{Name: "Other", Slug: "lunch", Color: "#000000"})
	require.ErrorIs(t, err, domain.ErrTagExists)

	_, err = svc.CreateTag(ctx, admin, domain.CreateTagRequest{Name: "Other", Slug: "other", Color: "#E26C2D"})
	require.ErrorIs(t, err, domain.ErrConflict)

	cook := testutil.Requester(testutil.CreateUser(t, db, "cook", domain.RoleUser))
	_, err = svc.CreateTag(ctx, cook, domain.CreateTagRequest{Name: "Mine", Slug: "mine", Color: "#111111"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagResponse{created}, tags)
}

func TestDeleteTag_DetachesRecipes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin", domain.RoleAdmin)
	lunch := testutil.CreateTag(t, db, "Lunch", "lunch", "#E26C2D")
	dinner := testutil.CreateTag(t, db, "Dinner", "dinner", "#49B64E")

	recipe := &entities.Recipe{
		AuthorID:    admin.ID,
		Name:        "Soup",
		Text:        "Boil.",
		Image:       "img",
		CookingTime: 30,
		Tags:        []entities.Tag{*lunch, *dinner},
	}
	require.NoError(t, db.Create(recipe).Error)

	require.NoError(t, svc.DeleteTag(ctx, testutil.Requester(admin), lunch.ID.String()))

	var links int64
	require.NoError(t, db.Table("recipe_tags").Count(&links).Error)
	assert.Equal(t, int64(1), links)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &entities.Recipe{}, ""))

	_, err := svc.GetTag(ctx, lunch.ID.String())
	require.ErrorIs(t, err, domain.ErrTagNotFound)

	require.ErrorIs(t, svc.DeleteTag(ctx, testutil.Requester(admin), lunch.ID.String()), domain.ErrNotFound)
	require.ErrorIs(t, svc.DeleteTag(ctx, domain.Requester{}, dinner.ID.String()), domain.ErrUnauthorized)
}
