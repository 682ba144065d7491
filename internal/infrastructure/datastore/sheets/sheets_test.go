package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
	"github.com/your-org/pos-backend/internal/pkg/logger"
)

type recorded struct {
	method string
	path   string
	body   string
}

type fakeGoogle struct {
	mu       sync.Mutex
	requests []recorded
	status   int
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{method: r.Method, path: r.URL.Path, body: string(body)})
	status := f.status
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": status, "message": http.StatusText(status)},
		})
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/userinfo"):
		_ = json.NewEncoder(w).Encode(map[string]any{"email": "caja@example.com"})
	case strings.Contains(r.URL.Path, "/values/") && strings.HasSuffix(r.URL.Path, ":append"):
		_, _ = w.Write([]byte(`{}`))
	case strings.HasSuffix(r.URL.Path, "/values:batchUpdate"):
		_, _ = w.Write([]byte(`{}`))
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		_, _ = w.Write([]byte(`{}`))
	case strings.Contains(r.URL.Path, "/values/"):
		_, _ = w.Write([]byte(`{"values":[["milanesas","Milanesas","🥩",1,true],["pollos"]]}`))
	case r.URL.Path == "/revoke":
		w.WriteHeader(http.StatusOK)
	default:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "sheet-1",
			"sheets":        []any{map[string]any{"properties": map[string]any{"title": "Categorias"}}},
		})
	}
}

func (f *fakeGoogle) find(pred func(recorded) bool) []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recorded
	for _, r := range f.requests {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func newTestBackend(t *testing.T) (*Backend, *fakeGoogle) {
	t.Helper()
	fake := &fakeGoogle{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.DatastoreConfig{
		SpreadsheetID: "sheet-1",
		Sheets: config.SheetNames{
			Categories:  "Categorias",
			Products:    "Productos",
			Sides:       "Acompañamientos",
			Sales:       "Ventas",
			SaleDetails: "Detalle_Ventas",
		},
	}
	return NewBackend(cfg, logger.Discard()).WithEndpoint(srv.URL+"/", srv.Client()), fake
}

func TestOpenRequiresCredential(t *testing.T) {
	b := NewBackend(config.DatastoreConfig{}, logger.Discard())
	_, err := b.Open(context.Background(), "")
	assert.ErrorIs(t, err, datastore.ErrUnauthorized)
}

func TestReadRows(t *testing.T) {
	b, fake := newTestBackend(t)
	src, err := b.Open(context.Background(), "token")
	require.NoError(t, err)

	rows, err := src.ReadRows(context.Background(), datastore.TableCategories)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"milanesas", "Milanesas", "🥩", "1", "TRUE"}, {"pollos"}}, rows)

	reqs := fake.find(func(r recorded) bool { return r.method == http.MethodGet && strings.Contains(r.path, "/values/") })
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].path, "Categorias!A2:E100")
}

func TestAppendRows(t *testing.T) {
	b, fake := newTestBackend(t)
	src, err := b.Open(context.Background(), "token")
	require.NoError(t, err)

	require.NoError(t, src.AppendRows(context.Background(), datastore.TableSales, [][]string{{"1", "7/3/2025"}}))
	require.NoError(t, src.AppendRows(context.Background(), datastore.TableSales, nil))

	reqs := fake.find(func(r recorded) bool { return strings.HasSuffix(r.path, ":append") })
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].path, "Ventas!A:H")
	assert.Contains(t, reqs[0].body, `"7/3/2025"`)
}

func TestEnsureSchema(t *testing.T) {
	b, fake := newTestBackend(t)
	src, err := b.Open(context.Background(), "token")
	require.NoError(t, err)

	require.NoError(t, src.EnsureSchema(context.Background()))

	adds := fake.find(func(r recorded) bool {
		return strings.HasSuffix(r.path, ":batchUpdate") && !strings.Contains(r.path, "/values")
	})
	require.Len(t, adds, 1)
	assert.Contains(t, adds[0].body, "Productos")
	assert.NotContains(t, adds[0].body, `"Categorias"`)

	headers := fake.find(func(r recorded) bool { return strings.HasSuffix(r.path, "/values:batchUpdate") })
	require.Len(t, headers, 1)
	assert.Contains(t, headers[0].body, "Detalle_Ventas!A1:J1")
	assert.Contains(t, headers[0].body, "ID_Categoria")
}

func TestProbeAndIdentity(t *testing.T) {
	b, fake := newTestBackend(t)
	src, err := b.Open(context.Background(), "token")
	require.NoError(t, err)

	require.NoError(t, src.Probe(context.Background()))

	email, err := b.ResolveEmail(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "caja@example.com", email)

	require.NoError(t, b.Revoke(context.Background(), "token"))
	revokes := fake.find(func(r recorded) bool { return r.path == "/revoke" })
	require.Len(t, revokes, 1)
	assert.Equal(t, "token=token", revokes[0].body)

	for _, tt := range []struct {
		status       int
		unauthorized bool
	}{
		{http.StatusUnauthorized, true},
		{http.StatusForbidden, true},
		{http.StatusNotFound, false},
	} {
		fake.mu.Lock()
		fake.status = tt.status
		fake.mu.Unlock()

		err := src.Probe(context.Background())
		require.Error(t, err, tt.status)
		assert.Equal(t, tt.unauthorized, errors.Is(err, datastore.ErrUnauthorized), tt.status)
	}
}
