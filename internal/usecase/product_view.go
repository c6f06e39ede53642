package usecase

import (
	"context"
	"errors"
	"iter"
	"slices"
	"strings"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/DRSN-tech/products-board/pkg/logger"
)

// ProductListView хранит локальную копию коллекции продуктов и состояние формы
// одного представления.
//
// Представление не потокобезопасно: им владеет один цикл событий (терминальный
// интерфейс) или сессия под мьютексом (веб-интерфейс). Методы Begin*/Prepare*
// выражают намерение пользователя, методы Apply* сверяют локальное состояние
// с результатом удалённого вызова. Коллекция меняется только в Apply* и только
// после успешного ответа сервера.
type ProductListView struct {
	products []domain.Product
	status   domain.LoadStatus
	form     domain.FormState
	pageErr  string
	formMsg  string
	lastFail *Failure
	drafts   uint64
	logger   logger.Logger
}

func NewProductListView(logger logger.Logger) *ProductListView {
	return &ProductListView{
		status: domain.StatusIdle,
		form:   domain.FormClosed{},
		logger: logger,
	}
}

// BeginLoad переводит представление в состояние загрузки.
func (v *ProductListView) BeginLoad() {
	v.status = domain.StatusLoading
	v.pageErr = ""
}

// ApplyLoad заменяет локальную коллекцию результатом чтения.
// При ошибке коллекция остаётся пустой, а на странице показывается сообщение.
func (v *ProductListView) ApplyLoad(products []domain.Product, err error) {
	const op = "ProductListView.ApplyLoad"

	if err != nil {
		v.products = nil
		v.status = domain.StatusLoadError
		v.pageErr = MsgLoadFailed
		v.fail(OpLoad, e.Wrap(op, err))
		return
	}

	v.products = dedupe(products)
	v.status = domain.StatusReady
	v.logger.Debugf("loaded %d products", len(v.products))
}

// Load выполняет полный цикл чтения коллекции.
func (v *ProductListView) Load(ctx context.Context, repo ProductRepository) error {
	v.BeginLoad()
	products, err := repo.List(ctx)
	v.ApplyLoad(products, err)
	return err
}

// Filter лениво отдаёт продукты, имя которых содержит term без учёта регистра.
// Коллекция не изменяется; итерация идёт по снимку на момент вызова.
func (v *ProductListView) Filter(term string) iter.Seq[domain.Product] {
	snapshot := v.products
	term = strings.ToLower(term)

	return func(yield func(domain.Product) bool) {
		for _, p := range snapshot {
			if !p.MatchesName(term) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Visible собирает результат Filter в срез.
func (v *ProductListView) Visible(term string) []domain.Product {
	return slices.Collect(v.Filter(term))
}

// OpenDraft открывает пустую форму нового продукта.
func (v *ProductListView) OpenDraft() {
	v.drafts++
	v.form = domain.FormDrafting{Seq: v.drafts}
	v.formMsg = ""
}

// OpenEdit копирует продукт в буфер редактирования и открывает форму.
func (v *ProductListView) OpenEdit(id domain.ProductID) error {
	const op = "ProductListView.OpenEdit"

	idx := v.indexOf(id)
	if idx < 0 {
		err := e.Wrap(op, e.ErrProductNotFound)
		v.fail(OpEdit, err)
		return err
	}

	v.form = domain.FormEditing{
		ID:     id,
		Buffer: domain.FieldsFromProduct(v.products[idx]),
	}
	v.formMsg = ""
	return nil
}

// SetField меняет поле открытой формы. При закрытой форме ничего не делает.
func (v *ProductListView) SetField(field domain.Field, value string) {
	v.form = domain.WithField(v.form, field, value)
}

// PrepareCommit валидирует открытую форму и возвращает изменение для отправки.
// Ошибка валидации остаётся локальной: она записывается в сообщение формы,
// сетевой вызов не нужен.
func (v *ProductListView) PrepareCommit() (Mutation, error) {
	const op = "ProductListView.PrepareCommit"

	switch st := v.form.(type) {
	case domain.FormDrafting:
		p, err := st.Draft.Validate()
		if err != nil {
			return Mutation{}, v.rejectForm(op, err)
		}
		return Mutation{Kind: MutationCreate, Product: p, Draft: st.Seq}, nil

	case domain.FormEditing:
		p, err := st.Buffer.Validate()
		if err != nil {
			return Mutation{}, v.rejectForm(op, err)
		}
		p.ID = st.ID
		return Mutation{Kind: MutationUpdate, Product: p}, nil

	default:
		return Mutation{}, e.Wrap(op, e.ErrFormClosed)
	}
}

// ApplyCreated добавляет созданный сервером продукт в коллекцию.
// Коллекция не перечитывается: ответ на создание считается источником истины.
// Форма закрывается, только если открыт тот же черновик draft.
func (v *ProductListView) ApplyCreated(draft uint64, created *domain.Product, err error) {
	const op = "ProductListView.ApplyCreated"

	if err == nil && (created == nil || created.ID.IsZero()) {
		err = e.Wrap("create response has no id", e.ErrRemote)
	}

	drafting := v.isDrafting(draft)
	if err != nil {
		if drafting {
			v.formMsg = MsgCreateFailed
		}
		v.fail(OpCreate, e.Wrap(op, err))
		return
	}

	v.products = upsert(v.products, *created)
	if drafting {
		v.form = domain.FormClosed{}
		v.formMsg = ""
	}
	v.logger.Infof("product %s created", created.ID)
}

// ApplyUpdated заменяет продукт с данным id ответом сервера, сохраняя id и позицию.
// Если продукт успел исчезнуть из коллекции, ответ игнорируется.
func (v *ProductListView) ApplyUpdated(id domain.ProductID, updated *domain.Product, err error) {
	const op = "ProductListView.ApplyUpdated"

	if err == nil && updated == nil {
		err = e.Wrap("empty update response", e.ErrRemote)
	}

	editing := v.isEditing(id)
	if err != nil {
		if editing {
			v.formMsg = MsgUpdateFailed
		}
		v.fail(OpUpdate, e.Wrap(op, err))
		return
	}

	if idx := v.indexOf(id); idx >= 0 {
		p := *updated
		p.ID = id
		v.products = replaceAt(v.products, idx, p)
	} else {
		v.logger.Warnf("product %s updated remotely but no longer listed", id)
	}

	if editing {
		v.form = domain.FormClosed{}
		v.formMsg = ""
	}
}

// Commit валидирует форму, отправляет изменение и сверяет результат.
func (v *ProductListView) Commit(ctx context.Context, repo ProductRepository) error {
	m, err := v.PrepareCommit()
	if err != nil {
		return err
	}

	switch m.Kind {
	case MutationCreate:
		created, err := repo.Create(ctx, &m.Product)
		v.ApplyCreated(m.Draft, created, err)
		return err
	default:
		updated, err := repo.Update(ctx, &m.Product)
		v.ApplyUpdated(m.Product.ID, updated, err)
		return err
	}
}

// ApplyDeleted удаляет продукт из коллекции после успешного удаления на сервере.
// Ошибка удаления только логируется и записывается как последняя неудача.
func (v *ProductListView) ApplyDeleted(id domain.ProductID, err error) {
	const op = "ProductListView.ApplyDeleted"

	if err != nil {
		v.fail(OpDelete, e.Wrap(op, err))
		return
	}

	idx := v.indexOf(id)
	if idx < 0 {
		v.logger.Debugf("product %s already removed", id)
		return
	}
	v.products = slices.Delete(slices.Clone(v.products), idx, idx+1)
}

// Delete удаляет продукт на сервере и сверяет коллекцию.
func (v *ProductListView) Delete(ctx context.Context, repo ProductRepository, id domain.ProductID) error {
	err := repo.Delete(ctx, id)
	v.ApplyDeleted(id, err)
	return err
}

// Cancel закрывает форму и отбрасывает черновик или буфер редактирования.
func (v *ProductListView) Cancel() {
	v.form = domain.FormClosed{}
	v.formMsg = ""
}

func (v *ProductListView) Status() domain.LoadStatus {
	return v.status
}

// Products возвращает копию локальной коллекции.
func (v *ProductListView) Products() []domain.Product {
	return slices.Clone(v.products)
}

func (v *ProductListView) Form() domain.FormState {
	return v.form
}

// PageError — ошибка уровня страницы (неудачная загрузка).
func (v *ProductListView) PageError() string {
	return v.pageErr
}

// FormMessage — сообщение внутри открытой формы.
func (v *ProductListView) FormMessage() string {
	return v.formMsg
}

// LastFailure — последняя неудачная операция любого типа, nil если неудач не было.
func (v *ProductListView) LastFailure() *Failure {
	return v.lastFail
}

func (v *ProductListView) rejectForm(op string, err error) error {
	v.formMsg = err.Error()
	v.lastFail = NewFailure(OpValidate, err)
	return e.Wrap(op, err)
}

func (v *ProductListView) fail(op Op, err error) {
	v.lastFail = NewFailure(op, err)

	var remote *e.RemoteError
	if errors.As(err, &remote) && remote.StatusCode >= 400 && remote.StatusCode < 500 {
		v.logger.Warnf("%s failed: %v", op, err)
		return
	}
	v.logger.Errorf(err, "%s failed", op)
}

func (v *ProductListView) isDrafting(seq uint64) bool {
	st, ok := v.form.(domain.FormDrafting)
	return ok && st.Seq == seq
}

func (v *ProductListView) isEditing(id domain.ProductID) bool {
	st, ok := v.form.(domain.FormEditing)
	return ok && st.ID == id
}

func (v *ProductListView) indexOf(id domain.ProductID) int {
	return slices.IndexFunc(v.products, func(p domain.Product) bool {
		return p.ID == id
	})
}

// dedupe схлопывает повторяющиеся id: позиция первого вхождения, значение последнего.
func dedupe(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = upsertInPlace(out, p)
	}
	return out
}

// upsert возвращает новую коллекцию, в которой p заменяет продукт с тем же id
// или добавлен в конец.
func upsert(products []domain.Product, p domain.Product) []domain.Product {
	return upsertInPlace(slices.Clone(products), p)
}

func upsertInPlace(products []domain.Product, p domain.Product) []domain.Product {
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return products
		}
	}
	return append(products, p)
}

func replaceAt(products []domain.Product, idx int, p domain.Product) []domain.Product {
	out := slices.Clone(products)
	out[idx] = p
	return out
}
