// AngelaMos | 2026
// handler_test.go

package kol

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/kol-backend/internal/core"
)

type fakeRepository struct {
	scanReturn []KOL
	scanErr    error

	inserted  []*KOL
	insertErr error

	updates     []*UpdateDirective
	applyReturn map[string]any
	applyErr    error

	removed   []string
	removeErr error
}

func (f *fakeRepository) ScanAll(ctx context.Context) ([]KOL, error) {
	return f.scanReturn, f.scanErr
}

func (f *fakeRepository) Insert(ctx context.Context, record *KOL) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, record)
	return nil
}

func (f *fakeRepository) ApplyUpdate(
	ctx context.Context,
	directive *UpdateDirective,
) (map[string]any, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	f.updates = append(f.updates, directive)
	return f.applyReturn, nil
}

func (f *fakeRepository) Remove(ctx context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

func newTestRouter(repo Repository) chi.Router {
	handler := NewHandler(NewService(repo, core.NewSanitizer()))

	r := chi.NewRouter()
	noAuth := func(next http.Handler) http.Handler { return next }
	handler.RegisterRoutes(r, noAuth)
	return r
}

func doJSON(
	t *testing.T,
	router chi.Router,
	method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func validRecordJSON(t *testing.T, overrides map[string]any) string {
	t.Helper()

	fields := validRecord()
	for k, v := range overrides {
		if v == nil {
			delete(fields, k)
		} else {
			fields[k] = v
		}
	}

	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return string(raw)
}

func TestHandler_List(t *testing.T) {
	t.Run("returns records", func(t *testing.T) {
		repo := &fakeRepository{
			scanReturn: []KOL{
				{ID: "1", Name: "Alice", ER: "3.5"},
				{ID: "2", Name: "Bob", PhotoCost: 1500},
			},
		}

		rec := doJSON(t, newTestRouter(repo), http.MethodGet, "/records/", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var records []KOL
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "Alice", records[0].Name)
		assert.Equal(t, "3.5", records[0].ER)
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		repo := &fakeRepository{scanErr: errors.New("scan blew up")}

		rec := doJSON(t, newTestRouter(repo), http.MethodGet, "/records/", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error fetching data", errorMessage(t, rec))
	})
}

func TestHandler_Create(t *testing.T) {
	t.Run("valid record created", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, nil),
		)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "KOL created", rec.Body.String())

		require.Len(t, repo.inserted, 1)
		record := repo.inserted[0]
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "Alice", record.Name)
		assert.Equal(t, []string{"Beauty", "Travel"}, record.Categories)
		assert.Equal(t, 1500.0, record.PhotoCost)
	})

	t.Run("each create assigns a fresh id", func(t *testing.T) {
		repo := &fakeRepository{}
		router := newTestRouter(repo)
		body := validRecordJSON(t, nil)

		doJSON(t, router, http.MethodPost, "/records/", body)
		doJSON(t, router, http.MethodPost, "/records/", body)

		require.Len(t, repo.inserted, 2)
		assert.NotEqual(t, repo.inserted[0].ID, repo.inserted[1].ID)
	})

	t.Run("invalid tel rejected before store", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, map[string]any{FieldTel: "abcd1234"}),
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(
			t,
			`"Tel" with value "abcd1234" fails to match `+
				`the required pattern: /^[0-9]+$/`,
			errorMessage(t, rec),
		)
		assert.Empty(t, repo.inserted)
	})

	t.Run("missing field rejected", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, map[string]any{FieldName: nil}),
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `"Name" is required`, errorMessage(t, rec))
		assert.Empty(t, repo.inserted)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, map[string]any{"Nickname": "Al"}),
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `"Nickname" is not allowed`, errorMessage(t, rec))
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		rec := doJSON(
			t,
			newTestRouter(&fakeRepository{}),
			http.MethodPost,
			"/records/",
			"not json",
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("markup stripped from stored strings", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, map[string]any{
				FieldName: `Alice<script>alert(1)</script>`,
			}),
		)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, repo.inserted, 1)
		assert.Equal(t, "Alice", repo.inserted[0].Name)
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		repo := &fakeRepository{insertErr: errors.New("put blew up")}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPost,
			"/records/",
			validRecordJSON(t, nil),
		)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error creating KOL", errorMessage(t, rec))
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("partial update applied", func(t *testing.T) {
		repo := &fakeRepository{
			applyReturn: map[string]any{
				"Name": "Bob",
				"ER%":  "4.2",
			},
		}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPut,
			"/records/abc",
			`{"Name": "Bob", "ER%": "4.2"}`,
		)

		require.Equal(t, http.StatusOK, rec.Code)

		var changed map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &changed))
		assert.Equal(t, "Bob", changed["Name"])
		assert.Equal(t, "4.2", changed["ER%"])

		require.Len(t, repo.updates, 1)
		d := repo.updates[0]
		assert.Equal(t, "abc", d.ID)
		assert.Equal(t, "set #Name = :Name, #ER = :ER", d.Expression)
		assert.Equal(t, "ER%", d.Names["#ER"])
	})

	t.Run("empty body rejected before store", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPut,
			"/records/abc",
			`{}`,
		)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No data provided for update", errorMessage(t, rec))
		assert.Empty(t, repo.updates)
	})

	t.Run("invalid field surfaces builder message", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPut,
			"/records/abc",
			`{"Tel": "abcd1234"}`,
		)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(
			t,
			`Invalid data for Tel: "Tel" with value "abcd1234" `+
				`fails to match the required pattern: /^[0-9]+$/`,
			errorMessage(t, rec),
		)
		assert.Empty(t, repo.updates)
	})

	t.Run("unknown field rejected before store", func(t *testing.T) {
		repo := &fakeRepository{}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPut,
			"/records/abc",
			`{"Nickname": "Al"}`,
		)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(
			t,
			`Invalid data for Nickname: "Nickname" is not allowed`,
			errorMessage(t, rec),
		)
		assert.Empty(t, repo.updates)
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		repo := &fakeRepository{applyErr: errors.New("update blew up")}

		rec := doJSON(
			t,
			newTestRouter(repo),
			http.MethodPut,
			"/records/abc",
			`{"Name": "Bob"}`,
		)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error updating KOL", errorMessage(t, rec))
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("delete succeeds without existence check", func(t *testing.T) {
		repo := &fakeRepository{}
		router := newTestRouter(repo)

		rec := doJSON(t, router, http.MethodDelete, "/records/no-such-id", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "KOL deleted", rec.Body.String())
		assert.Equal(t, []string{"no-such-id"}, repo.removed)

		// Deleting the same id again looks identical.
		rec = doJSON(t, router, http.MethodDelete, "/records/no-such-id", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "KOL deleted", rec.Body.String())
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		repo := &fakeRepository{removeErr: errors.New("delete blew up")}

		rec := doJSON(t, newTestRouter(repo), http.MethodDelete, "/records/abc", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error deleting KOL", errorMessage(t, rec))
	})
}
