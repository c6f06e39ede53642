package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID — непрозрачный идентификатор, назначаемый сервером.
// Клиент никогда не генерирует его сам.
type ProductID string

func (id ProductID) IsZero() bool {
	return id == ""
}

func (id ProductID) String() string {
	return string(id)
}

// Product описывает продукт в том виде, в котором его вернул сервер
type Product struct {
	ID          ProductID
	Name        string
	Price       decimal.Decimal
	Description string
}

func NewProduct(id ProductID, name string, price decimal.Decimal, description string) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: description,
	}
}

// MatchesName сообщает, содержит ли имя продукта term без учёта регистра.
// term должен быть уже приведён к нижнему регистру.
func (p Product) MatchesName(term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term)
}

// SameFields сравнивает поля продукта без учёта идентификатора.
func (p Product) SameFields(other Product) bool {
	return p.Name == other.Name &&
		p.Price.Equal(other.Price) &&
		p.Description == other.Description
}

// DisplayPrice — цена для вывода пользователю: "R10.5".
func (p Product) DisplayPrice() string {
	return "R" + p.Price.String()
}
