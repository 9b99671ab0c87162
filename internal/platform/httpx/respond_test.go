package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("city 9: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad id", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: cities", ErrUpstream), http.StatusBadGateway},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		RespondError(rr, tc.err)
		assert.Equal(t, tc.status, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body ProblemDetail
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, tc.status, body.Status)
	}
}
