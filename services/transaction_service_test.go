package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiersept/example-app/database/dbtest"
	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/repository"
)

func TestTransactionService_List(t *testing.T) {
	db := dbtest.Seeded(t)
	svc := NewTransactionService(repository.NewSQLiteTransactionRepo(db.Conn))
	ctx := context.Background()

	page, err := svc.List(ctx, 1, models.TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, models.DefaultTransactionLimit)
	assert.Equal(t, 19, page.Total)
	assert.Equal(t, "date", page.Query.Sort)

	page, err = svc.List(ctx, 1, models.TransactionQuery{Search: "grocery"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Grocery Store", page.Items[0].Description)
	assert.Equal(t, 1, page.Total)

	page, err = svc.List(ctx, 1, models.TransactionQuery{Page: 99})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 19, page.Total)
}

func TestTransactionService_RejectsInvalidSort(t *testing.T) {
	db := dbtest.Seeded(t)
	svc := NewTransactionService(repository.NewSQLiteTransactionRepo(db.Conn))

	_, err := svc.List(context.Background(), 1, models.TransactionQuery{Sort: "password_hash"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.List(context.Background(), 1, models.TransactionQuery{Order: "random"})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestAccountAndCardServices(t *testing.T) {
	db := dbtest.Seeded(t)
	ctx := context.Background()

	accounts, err := NewAccountService(repository.NewSQLiteAccountRepo(db.Conn)).List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.InDelta(t, 1547.91, accounts[0].Balance, 0.001)

	cards, err := NewCardService(repository.NewSQLiteCardRepo(db.Conn)).List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}
