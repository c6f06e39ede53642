package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/repository/api/apitest"
	"github.com/DRSN-tech/products-board/internal/repository/api/converter"
	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(baseURL string) *ProductRepo {
	return NewProductRepo(&http.Client{Timeout: 2 * time.Second}, baseURL, converter.NewProductConverterImpl(), logger.NewNopLogger())
}

func widget() domain.Product {
	return *domain.NewProduct("1", "Widget", decimal.NewFromInt(10), "d")
}

func TestProductRepo_List(t *testing.T) {
	srv := apitest.NewServer(t, widget())
	repo := newRepo(srv.URL)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.ProductID("1"), products[0].ID)
	assert.True(t, products[0].SameFields(widget()))

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/Products", reqs[0].Path)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestProductRepo_CreateThenList(t *testing.T) {
	srv := apitest.NewServer(t, widget())
	repo := newRepo(srv.URL)
	ctx := context.Background()

	draft := domain.NewProduct("", "Gizmo", decimal.RequireFromString("2.5"), "g")
	created, err := repo.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductID("2"), created.ID)
	assert.True(t, created.SameFields(*draft))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, created.ID, products[1].ID)
	assert.True(t, created.SameFields(products[1]))
}

func TestProductRepo_Update(t *testing.T) {
	srv := apitest.NewServer(t, widget())
	repo := newRepo(srv.URL)

	changed := widget()
	changed.Name = "Widget Pro"
	updated, err := repo.Update(context.Background(), &changed)
	require.NoError(t, err)
	assert.Equal(t, changed.ID, updated.ID)
	assert.True(t, changed.SameFields(*updated))
	assert.Equal(t, "Widget Pro", srv.Products()[0].Name)
	assert.Equal(t, "/api/Products/1", srv.Requests()[0].Path)
}

func TestProductRepo_UpdateNoContentEchoesRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := widget()
	updated, err := newRepo(srv.URL).Update(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, p, *updated)
}

func TestProductRepo_Delete(t *testing.T) {
	srv := apitest.NewServer(t, widget())
	repo := newRepo(srv.URL)

	require.NoError(t, repo.Delete(context.Background(), "1"))
	assert.Empty(t, srv.Products())

	err := repo.Delete(context.Background(), "1")
	var remote *e.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
}

func TestProductRepo_ServerFailure(t *testing.T) {
	srv := apitest.NewServer(t, widget())
	srv.Fail(http.MethodGet, http.StatusInternalServerError)
	repo := newRepo(srv.URL)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrRemote)

	var remote *e.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Equal(t, http.MethodGet, remote.Method)
}

func TestProductRepo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newRepo(url).List(context.Background())
	require.Error(t, err)

	var remote *e.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Zero(t, remote.StatusCode)
}

func TestProductRepo_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "Widget", "price": "cheap", "description": "d"}]`))
	}))
	defer srv.Close()

	_, err := newRepo(srv.URL).List(context.Background())
	assert.ErrorIs(t, err, e.ErrRemote)
}

func TestProductRepo_EscapesOpaqueID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newRepo(srv.URL).Delete(context.Background(), "a b/c"))
	assert.Equal(t, "/api/Products/a%20b%2Fc", gotPath)
}

func TestProductRepo_UpdateKeepsStringIDs(t *testing.T) {
	var putIDs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"id": "007", "name": "Padded", "price": 1, "description": "d"},
				{"id": "42", "name": "Quoted", "price": 2, "description": "d"}
			]`))
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			var model struct {
				ID json.RawMessage `json:"id"`
			}
			assert.NoError(t, json.Unmarshal(body, &model))
			putIDs = append(putIDs, string(model.ID))
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	repo := newRepo(srv.URL)
	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	for i := range products {
		updated, err := repo.Update(context.Background(), &products[i])
		require.NoError(t, err)
		assert.Equal(t, products[i].ID, updated.ID)
	}

	assert.Equal(t, []string{`"007"`, `"42"`}, putIDs)
}
