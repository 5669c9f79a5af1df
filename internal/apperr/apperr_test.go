package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     *Error
		status  int
		message string
	}{
		{"parse", Parse(errors.New(`strconv.Atoi: parsing "x": invalid syntax`)), http.StatusRequestedRangeNotSatisfiable, `invalid parameter: strconv.Atoi: parsing "x": invalid syntax`},
		{"missing parameters", MissingParameters(), http.StatusRequestedRangeNotSatisfiable, "missing parameter"},
		{"invalid body", InvalidBody(errors.New("unexpected EOF")), http.StatusUnprocessableEntity, "invalid request body: unexpected EOF"},
		{"question not found", QuestionNotFound(), http.StatusNotFound, "question not found"},
		{"account not found", AccountNotFound(), http.StatusNotFound, "account not found"},
		{"database query", DatabaseQuery(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")), http.StatusUnprocessableEntity, "cannot update data"},
		{"duplicate", Duplicate(errors.New("ERROR: duplicate key value (SQLSTATE 23505)")), http.StatusUnprocessableEntity, "account already exists"},
		{"upstream transport", Transport(errors.New("dial tcp: connection refused")), http.StatusInternalServerError, "internal server error"},
		{"upstream client", Upstream(400, "invalid api key"), http.StatusInternalServerError, "internal server error"},
		{"upstream server", Upstream(503, "overloaded"), http.StatusInternalServerError, "internal server error"},
		{"credential hash", CredentialHash(errors.New("malformed credential hash")), http.StatusRequestedRangeNotSatisfiable, "cannot verify password"},
		{"wrong password", WrongPassword(), http.StatusRequestedRangeNotSatisfiable, "wrong password"},
		{"cannot decrypt token", CannotDecryptToken(), http.StatusRequestedRangeNotSatisfiable, "cannot decrypt token"},
		{"unauthorized", Unauthorized(), http.StatusForbidden, "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.message, tt.err.Message())
		})
	}
}

func TestUpstream_Classification(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindUpstreamClient, Upstream(404, "gone").Kind)
	assert.Equal(t, KindUpstreamClient, Upstream(429, "slow down").Kind)
	assert.Equal(t, KindUpstreamServer, Upstream(500, "boom").Kind)
	assert.Equal(t, KindUpstreamServer, Upstream(502, "bad gateway").Kind)
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("SQLSTATE 23505")
	err := Duplicate(cause)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("add account: %w", err)
	var appErr *Error
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, KindDuplicateRecord, appErr.Kind)
}

func respondWith(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/questions", nil)

	Respond(c, err)
	return w
}

func TestRespond_NeverLeaksInternalDetail(t *testing.T) {
	raw := errors.New(`ERROR: insert or update on table "questions" violates foreign key constraint`)
	w := respondWith(t, fmt.Errorf("add question: %w", DatabaseQuery(raw)))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"cannot update data"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "constraint")
}

func TestRespond_UnclassifiedError(t *testing.T) {
	w := respondWith(t, errors.New("something nobody classified"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(NoRoute)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}
