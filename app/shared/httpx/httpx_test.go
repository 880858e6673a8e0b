package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    apperrors.Kind
		wantMessage string
	}{
		{
			name:        "not found",
			err:         apperrors.NotFound("edition not found"),
			wantStatus:  http.StatusNotFound,
			wantKind:    apperrors.KindNotFound,
			wantMessage: "edition not found",
		},
		{
			name:        "conflict",
			err:         apperrors.Conflict("year already exists"),
			wantStatus:  http.StatusConflict,
			wantKind:    apperrors.KindConflict,
			wantMessage: "year already exists",
		},
		{
			name:        "validation",
			err:         apperrors.Validation("unknown status"),
			wantStatus:  http.StatusBadRequest,
			wantKind:    apperrors.KindValidation,
			wantMessage: "unknown status",
		},
		{
			name:        "rate limited",
			err:         ErrWriteBudgetExceeded,
			wantStatus:  http.StatusTooManyRequests,
			wantKind:    apperrors.KindRateLimited,
			wantMessage: "too many write requests",
		},
		{
			name:        "internal hides message",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantKind:    apperrors.KindInternal,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/editions/x/resolved", nil)

			WriteError(rec, req, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Error.Kind)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}

func TestIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ranking?limit=5&bad=x", nil)
	assert.Equal(t, 5, IntQuery(req, "limit", 20))
	assert.Equal(t, 20, IntQuery(req, "bad", 20))
	assert.Equal(t, 20, IntQuery(req, "missing", 20))
}
