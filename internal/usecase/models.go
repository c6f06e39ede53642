package usecase

import "github.com/DRSN-tech/products-board/internal/domain"

// Op — действие пользователя, которое может завершиться ошибкой.
type Op string

const (
	OpLoad     Op = "load"
	OpValidate Op = "validate"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpEdit     Op = "edit"
)

// MutationKind — тип изменения, которое нужно отправить на сервер.
type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
)

// Mutation — провалидированное изменение из формы, готовое к отправке.
// Для MutationUpdate Product.ID совпадает с ID редактируемого продукта,
// для MutationCreate Draft — номер черновика, из которого оно получено.
type Mutation struct {
	Kind    MutationKind
	Product domain.Product
	Draft   uint64
}

// Failure — последняя неудачная операция представления.
type Failure struct {
	Op  Op
	Err error
}

func NewFailure(op Op, err error) *Failure {
	return &Failure{Op: op, Err: err}
}
