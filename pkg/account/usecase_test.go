package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/repository/memory"
)

func TestParseRole(t *testing.T) {
	r, err := account.ParseRole(" Hiring_Group ")
	require.NoError(t, err)
	assert.Equal(t, account.RoleHiringGroup, r)

	_, err = account.ParseRole("owner")
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := account.NewService(memory.New().Accounts())

	acc, err := svc.Create(ctx, account.CreateInput{Email: " Ana@Mail.com ", Password: "secret1", Role: account.RoleCandidate, FirstName: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", acc.Email)
	assert.Equal(t, "Ana", acc.FirstName)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("secret1")))

	_, err = svc.Create(ctx, account.CreateInput{Email: "ANA@mail.com", Password: "secret1", Role: account.RoleCandidate})
	require.ErrorIs(t, err, account.ErrAlreadyExists)

	cases := []account.CreateInput{
		{Email: "@mail.com", Password: "secret1", Role: account.RoleCandidate},
		{Email: "b@mail.com", Password: "short", Role: account.RoleCandidate},
		{Email: "c@mail.com", Password: "secret1", Role: "owner"},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		assert.True(t, apperror.Is(err, apperror.CodeValidation), in.Email)
	}
}

func TestAccessRules(t *testing.T) {
	ctx := context.Background()
	svc := account.NewService(memory.New().Accounts())
	acc, err := svc.Create(ctx, account.CreateInput{Email: "a@x.com", Password: "secret1", Role: account.RoleCandidate})
	require.NoError(t, err)

	self := account.Actor{ID: acc.ID, Role: acc.Role}
	other := account.Actor{ID: uuid.New(), Role: account.RoleCandidate}
	hg := account.Actor{ID: uuid.New(), Role: account.RoleHiringGroup}
	admin := account.Actor{ID: uuid.New(), Role: account.RoleAdmin}

	_, err = svc.Get(ctx, other, acc.ID)
	require.ErrorIs(t, err, account.ErrForbidden)
	_, err = svc.Get(ctx, hg, acc.ID)
	require.NoError(t, err)

	_, err = svc.List(ctx, self, 10, 0)
	require.ErrorIs(t, err, account.ErrForbidden)
	list, err := svc.List(ctx, hg, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	phone := "+56 9 1234"
	_, err = svc.Update(ctx, hg, acc.ID, account.UpdateInput{Phone: &phone})
	require.ErrorIs(t, err, account.ErrForbidden)
	updated, err := svc.Update(ctx, self, acc.ID, account.UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, account.RoleCandidate, updated.Role)

	short := "123"
	_, err = svc.Update(ctx, admin, acc.ID, account.UpdateInput{Password: &short})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	require.ErrorIs(t, svc.Delete(ctx, other, acc.ID), account.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, acc.ID))
	_, err = svc.Get(ctx, admin, acc.ID)
	require.ErrorIs(t, err, account.ErrNotFound)
}
