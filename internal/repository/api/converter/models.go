package converter

import "encoding/json"

// ProductModel — представление продукта в JSON удалённого API.
// Цена передаётся числом, id — числом или строкой, как его выдал сервер.
type ProductModel struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Name        string          `json:"name"`
	Price       json.Number     `json:"price"`
	Description string          `json:"description"`
}
