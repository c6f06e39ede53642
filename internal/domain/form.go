package domain

import (
	"strings"

	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/shopspring/decimal"
)

// Field адресует одно поле формы продукта.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldDescription
)

// Fields перечисляет поля формы в порядке отображения.
var Fields = []Field{FieldName, FieldPrice, FieldDescription}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPrice:
		return "price"
	case FieldDescription:
		return "description"
	default:
		return "unknown"
	}
}

// ProductFields — сырые значения полей формы (то, что ввёл пользователь).
type ProductFields struct {
	Name        string
	Price       string
	Description string
}

// FieldsFromProduct заполняет буфер редактирования копией продукта.
func FieldsFromProduct(p Product) ProductFields {
	return ProductFields{
		Name:        p.Name,
		Price:       p.Price.String(),
		Description: p.Description,
	}
}

// Get возвращает значение поля.
func (f ProductFields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldPrice:
		return f.Price
	case FieldDescription:
		return f.Description
	default:
		return ""
	}
}

// With возвращает копию с изменённым полем.
func (f ProductFields) With(field Field, value string) ProductFields {
	switch field {
	case FieldName:
		f.Name = value
	case FieldPrice:
		f.Price = value
	case FieldDescription:
		f.Description = value
	}
	return f
}

// Validate проверяет обязательные поля и разбирает цену.
// Возвращённый продукт не имеет идентификатора.
func (f ProductFields) Validate() (Product, error) {
	name := strings.TrimSpace(f.Name)
	priceStr := strings.TrimSpace(f.Price)
	description := strings.TrimSpace(f.Description)

	if name == "" || priceStr == "" || description == "" {
		return Product{}, e.ErrMissingFields
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return Product{}, e.ErrInvalidPrice
	}

	if !price.IsPositive() {
		return Product{}, e.ErrPriceMustBePositive
	}

	return *NewProduct("", name, price, description), nil
}

// FormState — состояние формы. Ровно один из вариантов:
// FormClosed, FormDrafting или FormEditing.
type FormState interface {
	formState()
}

// FormClosed — форма закрыта.
type FormClosed struct{}

// FormDrafting — открыта форма нового продукта.
// Seq различает черновики: ответ на создание относится только к своему черновику.
type FormDrafting struct {
	Seq   uint64
	Draft ProductFields
}

// FormEditing — открыта форма редактирования существующего продукта.
type FormEditing struct {
	ID     ProductID
	Buffer ProductFields
}

func (FormClosed) formState()   {}
func (FormDrafting) formState() {}
func (FormEditing) formState()  {}

// FormFields возвращает поля открытой формы; ok == false, если форма закрыта.
func FormFields(s FormState) (ProductFields, bool) {
	switch st := s.(type) {
	case FormDrafting:
		return st.Draft, true
	case FormEditing:
		return st.Buffer, true
	default:
		return ProductFields{}, false
	}
}

// WithField возвращает новое состояние формы с изменённым полем.
// Закрытая форма не меняется.
func WithField(s FormState, field Field, value string) FormState {
	switch st := s.(type) {
	case FormDrafting:
		st.Draft = st.Draft.With(field, value)
		return st
	case FormEditing:
		st.Buffer = st.Buffer.With(field, value)
		return st
	default:
		return s
	}
}

// LoadStatus — состояние загрузки коллекции.
type LoadStatus int

const (
	StatusIdle LoadStatus = iota
	StatusLoading
	StatusReady
	StatusLoadError
)

func (s LoadStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusLoadError:
		return "load_error"
	default:
		return "unknown"
	}
}
