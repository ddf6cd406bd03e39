package router

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// Full put/get/replace/delete lifecycle for a single key. The second put is a
// whole-document replacement: the original prefix value must not survive.
func TestDocumentLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := Setup(db)

	first := `{"prefix":"!"}`
	second := `{"prefix":"?","x":1}`

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("guild-1", first).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT payload FROM documents WHERE key = \\$1").
		WithArgs("guild-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(first)))
	mock.ExpectExec("INSERT INTO documents").
		WithArgs("guild-1", second).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT payload FROM documents WHERE key = \\$1").
		WithArgs("guild-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(second)))
	mock.ExpectExec("DELETE FROM documents").
		WithArgs("guild-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT payload FROM documents WHERE key = \\$1").
		WithArgs("guild-1").
		WillReturnError(sql.ErrNoRows)

	rr := doRequest(t, h, http.MethodPost, "/data/guild-1", first)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/data/guild-1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, first, rr.Body.String())

	rr = doRequest(t, h, http.MethodPost, "/data/guild-1", second)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/data/guild-1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, second, rr.Body.String())

	rr = doRequest(t, h, http.MethodDelete, "/data/guild-1", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/data/guild-1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutInvalidBodiesAreRejectedBeforeStorage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := Setup(db)

	for _, body := range []string{"", "{}", "null", `["a"]`, `"a"`, "{"} {
		rr := doRequest(t, h, http.MethodPost, "/data/guild-1", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}

	// no storage statement may have been issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAbsentKeyReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := Setup(db)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rr := doRequest(t, h, http.MethodDelete, "/data/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageFailuresReturnGenericError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := Setup(db)

	mock.ExpectQuery("SELECT payload FROM documents WHERE key = \\$1").
		WithArgs("guild-1").
		WillReturnError(errors.New("connection refused: 10.0.0.5"))
	mock.ExpectExec("INSERT INTO documents").
		WithArgs("guild-1", `{"prefix":"!"}`).
		WillReturnError(errors.New("connection refused: 10.0.0.5"))

	rr := doRequest(t, h, http.MethodGet, "/data/guild-1", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	// diagnostic detail must not leak to the client
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")

	rr = doRequest(t, h, http.MethodPost, "/data/guild-1", `{"prefix":"!"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthz(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	h := Setup(db)

	mock.ExpectPing()
	rr := doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	mock.ExpectPing().WillReturnError(errors.New("down"))
	rr = doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
