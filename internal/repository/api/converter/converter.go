package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует Product между domain и моделью REST API.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) (*domain.Product, error)
	ToArrEntity(models []ProductModel) ([]domain.Product, error)
}

// ProductConverterImpl запоминает, в какой форме сервер прислал каждый id
// (числом или строкой), и возвращает его в той же форме.
type ProductConverterImpl struct {
	mu     sync.RWMutex
	quoted map[domain.ProductID]bool
}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{quoted: make(map[domain.ProductID]bool)}
}

// ToModel переводит продукт в модель API. Пустой id не передаётся.
func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          EncodeID(entity.ID, c.isQuoted(entity.ID)),
		Name:        entity.Name,
		Price:       json.Number(entity.Price.String()),
		Description: entity.Description,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) (*domain.Product, error) {
	id, quoted, err := DecodeID(model.ID)
	if err != nil {
		return nil, err
	}
	if !id.IsZero() {
		c.remember(id, quoted)
	}

	price, err := decimal.NewFromString(model.Price.String())
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", model.Price, err)
	}

	return domain.NewProduct(id, model.Name, price, model.Description), nil
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		p, err := c.ToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		products = append(products, *p)
	}

	return products, nil
}

func (c *ProductConverterImpl) remember(id domain.ProductID, quoted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quoted[id] = quoted
}

// isQuoted возвращает форму, в которой id пришёл от сервера.
// Для незнакомого id числом считается только корректный JSON-литерал числа.
func (c *ProductConverterImpl) isQuoted(id domain.ProductID) bool {
	c.mu.RLock()
	quoted, ok := c.quoted[id]
	c.mu.RUnlock()
	if ok {
		return quoted
	}
	return !isNumberLiteral(id.String())
}

// DecodeID читает id из JSON-значения (число, строка или null).
// quoted сообщает, что id был строкой.
func DecodeID(raw json.RawMessage) (id domain.ProductID, quoted bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("invalid id %s: %w", raw, err)
		}
		return domain.ProductID(s), true, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false, fmt.Errorf("invalid id %s: %w", raw, err)
	}

	return domain.ProductID(n.String()), false, nil
}

// EncodeID записывает id в JSON-значение: строкой, если quoted, иначе числом.
// Значение, не являющееся JSON-числом, всегда уходит строкой.
func EncodeID(id domain.ProductID, quoted bool) json.RawMessage {
	if id.IsZero() {
		return nil
	}

	if !quoted && isNumberLiteral(id.String()) {
		return json.RawMessage(id.String())
	}

	data, _ := json.Marshal(id.String())
	return data
}

func isNumberLiteral(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
