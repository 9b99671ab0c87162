package backend

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewritePath(t *testing.T) {
	assert.Equal(t, "/api/v1/masterdata/suppliers", RewritePath("/api/masterdata/suppliers"))
	assert.Equal(t, "/api/v1/", RewritePath("/api"))
	assert.Equal(t, "/api/v1/cx/invoices", RewritePath("/api/v1/cx/invoices"))
}

func TestProxyForwardsToVersionedAPI(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/masterdata/forwarders", r.URL.Path)
		assert.Equal(t, "status=Active", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	proxy, err := NewProxy(upstream.URL, slog.Default())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	proxy.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/masterdata/forwarders?status=Active", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestProxyUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	proxy, err := NewProxy(addr, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	proxy.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/masterdata/forwarders", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestNewProxyRejectsRelativeUpstream(t *testing.T) {
	_, err := NewProxy("/relative", nil)
	require.Error(t, err)
}
