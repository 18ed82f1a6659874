package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRouter(t *testing.T, dispatcher *fakeDispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := newTestService(t, dispatcher)
	handler := NewHandler(svc, logger.NewTestLogger(t))

	engine := gin.New()
	engine.POST("/api/subscribe", handler.Subscribe())
	return engine
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) *Result {
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return &result
}

// ==========================
// Core Functionality Tests
// ==========================

func TestSubscribe_Success(t *testing.T) {
	router := newTestRouter(t, &fakeDispatcher{mode: "demo"})

	rec := postJSON(router, `{
		"email": "you@example.com",
		"roast": "House Medium — Medium Roast",
		"size": "2 lb",
		"frequency": "Every 2 Weeks",
		"price": 28.80
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)

	assert.True(t, result.OK)
	assert.Empty(t, result.Error)
	assert.Equal(t, "demo", result.Mode)
	assert.Equal(t, "sent_demo", result.EmailStatus)
	assert.Equal(t, "orders@standardissuecoffee.co", result.CompanyInbox)
	require.NotNil(t, result.IDs)
	assert.NotEmpty(t, result.IDs.CustomerMessageID)
	assert.NotEmpty(t, result.IDs.CompanyMessageID)
	assert.NotEqual(t, result.IDs.CustomerMessageID, result.IDs.CompanyMessageID)
}

func TestSubscribe_AcceptsPriceAsString(t *testing.T) {
	dispatcher := &fakeDispatcher{mode: "demo"}
	router := newTestRouter(t, dispatcher)

	rec := postJSON(router, `{"email": "you@example.com", "price": "17.10"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.batches, 1)
	assert.Contains(t, dispatcher.batches[0].Customer.Text, "$17.10")
}

func TestSubscribe_EmailValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "missing email field",
			body:        `{"roast": "First Light — Light Roast"}`,
			expectedMsg: "Email is required.",
		},
		{
			name:        "empty email",
			body:        `{"email": ""}`,
			expectedMsg: "Email is required.",
		},
		{
			name:        "invalid email",
			body:        `{"email": "not-an-address"}`,
			expectedMsg: "Please enter a valid email address.",
		},
		{
			name:        "email with whitespace",
			body:        `{"email": "has space@b.com"}`,
			expectedMsg: "Please enter a valid email address.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &fakeDispatcher{mode: "demo"}
			router := newTestRouter(t, dispatcher)

			rec := postJSON(router, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			result := decodeResult(t, rec)
			assert.False(t, result.OK)
			assert.Equal(t, tt.expectedMsg, result.Error)
			assert.Empty(t, dispatcher.batches)
		})
	}
}

func TestSubscribe_MalformedBodyIsServerError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated object", body: `{"email": "you@example.com"`},
		{name: "not json", body: `email=you@example.com`},
		{name: "wrong field type", body: `{"email": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &fakeDispatcher{mode: "demo"})

			rec := postJSON(router, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			result := decodeResult(t, rec)
			assert.False(t, result.OK)
			assert.Equal(t, "Server error.", result.Error)
		})
	}
}

func TestSubscribe_DispatchFailureHidesDetail(t *testing.T) {
	router := newTestRouter(t, &fakeDispatcher{
		mode: "ses",
		err:  context.DeadlineExceeded,
	})

	rec := postJSON(router, `{"email": "you@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.OK)
	assert.Equal(t, "Server error.", result.Error)
	assert.NotContains(t, rec.Body.String(), "deadline")
}

func TestSubscribe_CountsEverySubmissionAsReceived(t *testing.T) {
	router := newTestRouter(t, &fakeDispatcher{mode: "demo"})
	received := metrics.SubmissionsReceived.WithLabelValues("demo")

	before := testutil.ToFloat64(received)

	// One rejection, one parse failure, one success: all three are received.
	postJSON(router, `{"email": ""}`)
	postJSON(router, `{"email": `)
	postJSON(router, `{"email": "you@example.com"}`)

	assert.Equal(t, before+3, testutil.ToFloat64(received))
}

func TestSubscribe_ConcurrentRequestsAreIndependent(t *testing.T) {
	router := newTestRouter(t, &fakeDispatcher{mode: "demo"})

	emails := []string{"first@example.com", "second@example.com", "third@example.com"}

	var wg sync.WaitGroup
	results := make([]*Result, len(emails))

	for i, email := range emails {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			body := new(bytes.Buffer)
			if !assert.NoError(t, json.NewEncoder(body).Encode(map[string]string{"email": email})) {
				return
			}

			req := httptest.NewRequest(http.MethodPost, "/api/subscribe", body)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if !assert.Equal(t, http.StatusOK, rec.Code) {
				return
			}

			var result Result
			if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)) {
				results[i] = &result
			}
		}(i, email)
	}
	wg.Wait()

	for i, result := range results {
		require.NotNil(t, result)
		assert.True(t, result.OK)
		require.NotNil(t, result.Previews)
		assert.Equal(t, emails[i], result.Previews.Customer.To)
	}
}
