package authz

import (
	"errors"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer()
	require.NoError(t, err)
	return e
}

func TestAuthorize(t *testing.T) {
	e := setupEnforcer(t)

	const authorID = "author-1"
	anonymous := domain.Requester{}
	author := domain.Requester{UserID: authorID, Role: domain.RoleUser}
	other := domain.Requester{UserID: "other-1", Role: domain.RoleUser}
	admin := domain.Requester{UserID: "admin-1", Role: domain.RoleAdmin}

	tests := []struct {
		name      string
		requester domain.Requester
		object    string
		action    string
		ownerID   string
		wantErr   error
	}{
		{"anonymous reads ingredient", anonymous, ObjectIngredient, ActionRead, "", nil},
		{"anonymous reads tag", anonymous, ObjectTag, ActionRead, "", nil},
		{"anonymous reads recipe", anonymous, ObjectRecipe, ActionRead, authorID, nil},
		{"anonymous cannot create recipe", anonymous, ObjectRecipe, ActionCreate, "", domain.ErrUnauthorized},
		{"anonymous cannot touch membership", anonymous, ObjectMembership, ActionWrite, "", domain.ErrUnauthorized},

		{"user creates recipe", other, ObjectRecipe, ActionCreate, "", nil},
		{"user cannot create ingredient", other, ObjectIngredient, ActionCreate, "", domain.ErrForbidden},
		{"user cannot write tag", other, ObjectTag, ActionWrite, "", domain.ErrForbidden},
		{"non author cannot write recipe", other, ObjectRecipe, ActionWrite, authorID, domain.ErrForbidden},
		{"author writes recipe", author, ObjectRecipe, ActionWrite, authorID, nil},

		{"admin writes foreign recipe", admin, ObjectRecipe, ActionWrite, authorID, nil},
		{"admin creates ingredient", admin, ObjectIngredient, ActionCreate, "", nil},
		{"admin writes tag", admin, ObjectTag, ActionWrite, "", nil},
		{"admin cannot write foreign membership", admin, ObjectMembership, ActionWrite, authorID, domain.ErrForbidden},

		{"owner writes membership", author, ObjectMembership, ActionWrite, authorID, nil},
		{"owner reads membership", author, ObjectMembership, ActionRead, authorID, nil},
		{"other cannot read membership", other, ObjectMembership, ActionRead, authorID, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Authorize(tt.requester, tt.object, tt.action, tt.ownerID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, []string{SubjectAnonymous}, Subjects(domain.Requester{}, "x"))
	assert.Equal(t, []string{SubjectUser}, Subjects(domain.Requester{UserID: "a"}, "b"))
	assert.Equal(t, []string{SubjectUser, SubjectOwner}, Subjects(domain.Requester{UserID: "a"}, "a"))
	assert.Equal(t,
		[]string{SubjectUser, SubjectOwner, SubjectAdmin},
		Subjects(domain.Requester{UserID: "a", Role: domain.RoleAdmin}, "a"),
	)
	assert.Equal(t, []string{SubjectUser}, Subjects(domain.Requester{UserID: "a"}, ""))
}

func TestLoadPolicyRejectsMalformedLine(t *testing.T) {
	e := setupEnforcer(t)
	err := loadPolicy(e.enforcer, "p, only-two")
	assert.Error(t, err)
}
