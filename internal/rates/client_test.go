package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLatest(t *testing.T) {
	t.Run("decodes rates on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v6/latest/EUR", r.URL.Path)
			w.Write([]byte(`{"result":"success","rates":{"USD":1.08,"ILS":3.95}}`))
		}))
		defer srv.Close()

		rates, err := NewClient(srv.URL, srv.Client()).Latest(context.Background(), "EUR")
		require.NoError(t, err)
		assert.Equal(t, 1.08, rates["USD"])
		assert.Equal(t, 3.95, rates["ILS"])
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client()).Latest(context.Background(), "EUR")
		assert.ErrorContains(t, err, "status 502")
	})

	t.Run("provider error result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"error"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client()).Latest(context.Background(), "EUR")
		assert.ErrorContains(t, err, `result "error"`)
	})

	t.Run("empty base rejected without a request", func(t *testing.T) {
		_, err := NewClient("http://unused.invalid", nil).Latest(context.Background(), "")
		assert.Error(t, err)
	})
}
