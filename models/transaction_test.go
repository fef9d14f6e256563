package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) (TransactionQuery, error) {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return ParseTransactionQuery(v.Get)
}

func TestParseTransactionQuery_Defaults(t *testing.T) {
	q, err := parse(t, "")
	require.NoError(t, err)

	assert.Equal(t, TransactionQuery{Sort: "date", Order: "desc", Page: 1, Limit: 10}, q)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, "date", q.SortColumn())
}

func TestParseTransactionQuery_Explicit(t *testing.T) {
	q, err := parse(t, "search=+grocery+&sort=AMOUNT&order=Asc&page=3&limit=5")
	require.NoError(t, err)

	assert.Equal(t, "grocery", q.Search)
	assert.Equal(t, "amount", q.Sort)
	assert.Equal(t, "asc", q.Order)
	assert.Equal(t, 10, q.Offset())
}

func TestParseTransactionQuery_Clamping(t *testing.T) {
	q, err := parse(t, "page=-4&limit=1000")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxTransactionLimit, q.Limit)

	q, err = parse(t, "limit=-2")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Limit)
}

func TestParseTransactionQuery_Invalid(t *testing.T) {
	for _, raw := range []string{
		"sort=id;DROP TABLE users",
		"sort=user_id",
		"order=sideways",
		"page=two",
		"limit=1.5",
	} {
		_, err := parse(t, raw)
		assert.Error(t, err, raw)
	}
}

func TestTransactionQuery_Values(t *testing.T) {
	assert.Empty(t, TransactionQuery{}.Values())

	v := TransactionQuery{Search: "bill", Sort: "amount", Order: "asc", Page: 2, Limit: 20}.Values()
	assert.Equal(t, map[string]string{
		"search": "bill", "sort": "amount", "order": "asc", "page": "2", "limit": "20",
	}, v)
}

func TestTokenPair_Complete(t *testing.T) {
	var nilPair *TokenPair
	assert.False(t, nilPair.Complete())
	assert.False(t, (&TokenPair{Token: "a"}).Complete())
	assert.True(t, (&TokenPair{Token: "a", RefreshToken: "b"}).Complete())
	assert.Equal(t, "42", Subject(42))
}
