package http

import (
	"net/http"
	"net/url"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// action — действие пользователя над представлением. Вызывается под мьютексом сессии.
type action func(w http.ResponseWriter, r *http.Request, v *usecase.ProductListView) error

type ProductHandler struct {
	repo   usecase.ProductRepository
	pages  *Pages
	logger logger.Logger
}

func NewProductHandler(repo usecase.ProductRepository, pages *Pages, logger logger.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, pages: pages, logger: logger}
}

// index отрисовывает страницу со списком продуктов, фильтр — параметр q.
func (p *ProductHandler) index(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	query := r.URL.Query().Get("q")

	sess.mu.Lock()
	p.activate(r, sess)
	data := newPageData(sess.view, query)
	sess.mu.Unlock()

	if err := p.pages.Render(w, data); err != nil {
		p.logger.Errorf(err, "failed to render products page")
	}
}

// getView
//
//	@Summary		Снимок представления
//	@Description	Возвращает состояние представления текущей сессии: статус загрузки, отфильтрованные продукты и форму
//	@Tags			view
//	@Produce		json
//	@Param			q	query		string	false	"Поисковая строка (подстрока имени, без учёта регистра)"
//	@Success		200	{object}	ViewResponse
//	@Router			/view [get]
func (p *ProductHandler) getView(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	sess.mu.Lock()
	p.activate(r, sess)
	res := NewViewResponse(sess.view, r.URL.Query().Get("q"))
	sess.mu.Unlock()

	WriteSuccess(w, http.StatusOK, res)
}

// page выполняет действие и перенаправляет обратно на страницу (POST/redirect/GET).
func (p *ProductHandler) page(act action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())

		sess.mu.Lock()
		p.activate(r, sess)
		if err := act(w, r, sess.view); err != nil {
			p.logger.Debugf("session %s: %s %s: %v", sess.ID, r.Method, r.URL.Path, err)
		}
		sess.mu.Unlock()

		http.Redirect(w, r, indexURL(queryFrom(r)), http.StatusSeeOther)
	}
}

// api выполняет действие и отвечает JSON-снимком представления или ошибкой.
func (p *ProductHandler) api(act action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())

		sess.mu.Lock()
		defer sess.mu.Unlock()

		p.activate(r, sess)
		if err := act(w, r, sess.view); err != nil {
			p.logger.Warnf("session %s: %s %s: %v", sess.ID, r.Method, r.URL.Path, err)
			WriteError(w, err)
			return
		}

		WriteSuccess(w, http.StatusOK, NewViewResponse(sess.view, queryFrom(r)))
	}
}

// activate загружает коллекцию при первом обращении к сессии.
// Ошибка загрузки остаётся в состоянии представления.
func (p *ProductHandler) activate(r *http.Request, sess *Session) {
	if sess.activated {
		return
	}
	sess.activated = true
	_ = sess.view.Load(r.Context(), p.repo)
}

// reload
//
//	@Summary		Перечитать коллекцию
//	@Tags			view
//	@Produce		json
//	@Success		200	{object}	ViewResponse
//	@Failure		502	{object}	ErrorResponse	"Ошибка удалённого API"
//	@Router			/view/reload [post]
func (p *ProductHandler) reload(_ http.ResponseWriter, r *http.Request, v *usecase.ProductListView) error {
	return v.Load(r.Context(), p.repo)
}

// openDraft
//
//	@Summary	Открыть форму нового продукта
//	@Tags		view
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/view/form/add [post]
func (p *ProductHandler) openDraft(_ http.ResponseWriter, _ *http.Request, v *usecase.ProductListView) error {
	v.OpenDraft()
	return nil
}

// openEdit
//
//	@Summary	Открыть форму редактирования продукта
//	@Tags		view
//	@Produce	json
//	@Param		id	path		string	true	"Идентификатор продукта"
//	@Success	200	{object}	ViewResponse
//	@Failure	404	{object}	ErrorResponse	"Продукта нет в локальной коллекции"
//	@Router		/view/form/edit/{id} [post]
func (p *ProductHandler) openEdit(_ http.ResponseWriter, r *http.Request, v *usecase.ProductListView) error {
	return v.OpenEdit(domain.ProductID(chi.URLParam(r, "id")))
}

// cancel
//
//	@Summary	Закрыть форму без сохранения
//	@Tags		view
//	@Produce	json
//	@Success	200	{object}	ViewResponse
//	@Router		/view/form/cancel [post]
func (p *ProductHandler) cancel(_ http.ResponseWriter, _ *http.Request, v *usecase.ProductListView) error {
	v.Cancel()
	return nil
}

// submit
//
//	@Summary		Сохранить форму
//	@Description	Создаёт продукт (черновик) или обновляет его (редактирование). Пустые поля и неположительная цена отклоняются без обращения к API
//	@Tags			view
//	@Accept			json
//	@Produce		json
//	@Param			form	body		FormRequest	true	"Поля формы"
//	@Success		200		{object}	ViewResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse	"Форма не открыта"
//	@Failure		502		{object}	ErrorResponse	"Ошибка удалённого API"
//	@Router			/view/form/submit [post]
func (p *ProductHandler) submit(w http.ResponseWriter, r *http.Request, v *usecase.ProductListView) error {
	req, err := parseFormRequest(w, r)
	if err != nil {
		return err
	}

	v.SetField(domain.FieldName, req.Name)
	v.SetField(domain.FieldPrice, req.Price)
	v.SetField(domain.FieldDescription, req.Description)

	return v.Commit(r.Context(), p.repo)
}

// deleteProduct
//
//	@Summary	Удалить продукт
//	@Tags		view
//	@Produce	json
//	@Param		id	path		string	true	"Идентификатор продукта"
//	@Success	200	{object}	ViewResponse
//	@Failure	502	{object}	ErrorResponse	"Ошибка удалённого API"
//	@Router		/view/products/{id}/delete [post]
func (p *ProductHandler) deleteProduct(_ http.ResponseWriter, r *http.Request, v *usecase.ProductListView) error {
	return v.Delete(r.Context(), p.repo, domain.ProductID(chi.URLParam(r, "id")))
}

func indexURL(query string) string {
	if query == "" {
		return "/"
	}
	return "/?" + url.Values{"q": {query}}.Encode()
}
