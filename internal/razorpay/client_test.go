package razorpay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{KeyID: "rzp_test_abc"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(Config{KeySecret: "secret"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(Config{KeyID: "rzp_test_abc", KeySecret: "secret"})
	assert.NoError(t, err)
}

func TestListPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_abc", user)
		assert.Equal(t, "secret", pass)

		q := r.URL.Query()
		assert.Equal(t, "100", q.Get("count"))
		assert.Equal(t, "200", q.Get("skip"))
		assert.Equal(t, "1700000000", q.Get("from"))
		assert.Equal(t, "1700086400", q.Get("to"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"entity": "collection",
			"count": 1,
			"items": [
				{"id": "pay_123", "amount": 50000, "currency": "INR", "status": "captured",
				 "method": "upi", "email": "a@b.com", "contact": "+911234567890", "created_at": 1700001234}
			]
		}`)
	}))
	defer srv.Close()

	c, err := NewClient(Config{KeyID: "rzp_test_abc", KeySecret: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	from, to := int64(1700000000), int64(1700086400)
	payments, err := c.ListPayments(context.Background(), ListOptions{Count: 100, Skip: 200, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, payments, 1)

	assert.Equal(t, "pay_123", payments[0].ID)
	assert.Equal(t, int64(50000), payments[0].Amount)
	assert.Equal(t, "captured", payments[0].Status)
}

func TestListOmitsUnsetWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("from"))
		assert.False(t, q.Has("to"))
		fmt.Fprint(w, `{"entity":"collection","count":0,"items":[]}`)
	}))
	defer srv.Close()

	c, err := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: srv.URL})
	require.NoError(t, err)

	refunds, err := c.ListRefunds(context.Background(), ListOptions{Count: 100})
	require.NoError(t, err)
	assert.Empty(t, refunds)
}

func TestListNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":{"description":"upstream hiccup"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(Config{KeyID: "k", KeySecret: "s", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.ListSettlements(context.Background(), ListOptions{Count: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http=502")
}
