package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/repository/api/converter"
	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const (
	productsPath    = "/api/Products"
	requestIDHeader = "X-Request-ID"
	maxBodySize     = 4 << 20
	maxErrorSnippet = 256
)

// ProductRepo реализует репозиторий продуктов поверх удалённого REST API.
type ProductRepo struct {
	client  *http.Client
	baseURL string
	conv    converter.ProductConverter
	logger  logger.Logger
}

func NewProductRepo(client *http.Client, baseURL string, conv converter.ProductConverter, logger logger.Logger) *ProductRepo {
	return &ProductRepo{
		client:  client,
		baseURL: baseURL,
		conv:    conv,
		logger:  logger,
	}
}

// List читает всю коллекцию.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var models []converter.ProductModel
	if _, err := p.do(ctx, http.MethodGet, productsPath, nil, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products, err := p.conv.ToArrEntity(models)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), p.badPayload(http.MethodGet, productsPath, err))
	}

	return products, nil
}

// Create создаёт продукт; сервер назначает id.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	draft := *product
	draft.ID = ""

	var model converter.ProductModel
	if _, err := p.do(ctx, http.MethodPost, productsPath, p.conv.ToModel(&draft), &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	created, err := p.conv.ToEntity(&model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), p.badPayload(http.MethodPost, productsPath, err))
	}

	return created, nil
}

// Update заменяет продукт целиком по его id.
// Если сервер ответил без тела (204), возвращается отправленный продукт.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	path := productPath(product.ID)

	var model converter.ProductModel
	hasBody, err := p.do(ctx, http.MethodPut, path, p.conv.ToModel(product), &model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if !hasBody {
		echo := *product
		return &echo, nil
	}

	updated, err := p.conv.ToEntity(&model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), p.badPayload(http.MethodPut, path, err))
	}
	if updated.ID.IsZero() {
		updated.ID = product.ID
	}

	return updated, nil
}

// Delete удаляет продукт по id.
func (p *ProductRepo) Delete(ctx context.Context, id domain.ProductID) error {
	if _, err := p.do(ctx, http.MethodDelete, productPath(id), nil, nil); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// do выполняет запрос к API. Любая ошибка транспорта или ответ вне 2xx
// возвращается как *e.RemoteError. hasBody сообщает, был ли декодирован ответ.
func (p *ProductRepo) do(ctx context.Context, method, path string, in any, out any) (bool, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return false, &e.RemoteError{Method: method, Path: path, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return false, &e.RemoteError{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	p.logger.Debugf("api request %s %s request_id=%s", method, path, requestID)

	resp, err := p.client.Do(req)
	if err != nil {
		return false, &e.RemoteError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return false, &e.RemoteError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warnf("api %s %s returned %d request_id=%s: %s", method, path, resp.StatusCode, requestID, snippet(data))
		return false, &e.RemoteError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, &e.RemoteError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	return true, nil
}

// badPayload — сервер ответил 2xx, но тело не соответствует контракту.
func (p *ProductRepo) badPayload(method, path string, err error) error {
	return &e.RemoteError{Method: method, Path: path, StatusCode: http.StatusOK, Err: errors.Join(errBadPayload, err)}
}

var errBadPayload = errors.New("unexpected response payload")

func productPath(id domain.ProductID) string {
	return productsPath + "/" + url.PathEscape(id.String())
}

func snippet(data []byte) string {
	if len(data) > maxErrorSnippet {
		return string(data[:maxErrorSnippet]) + "..."
	}
	return string(data)
}
