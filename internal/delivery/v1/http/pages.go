package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pages отрисовывает HTML-страницу списка продуктов.
type Pages struct {
	index *template.Template
}

func NewPages() (*Pages, error) {
	index, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Pages{index: index}, nil
}

type productRow struct {
	ID          string
	Name        string
	Price       string
	Description string
}

type formData struct {
	Title       string
	SubmitLabel string
	Message     string
	Name        string
	Price       string
	Description string
}

type pageData struct {
	Query     string
	Loading   bool
	PageError string
	Products  []productRow
	Form      *formData
}

func newPageData(v *usecase.ProductListView, query string) pageData {
	data := pageData{
		Query:     query,
		Loading:   v.Status() == domain.StatusLoading,
		PageError: v.PageError(),
	}

	for p := range v.Filter(query) {
		data.Products = append(data.Products, productRow{
			ID:          p.ID.String(),
			Name:        p.Name,
			Price:       p.DisplayPrice(),
			Description: p.Description,
		})
	}

	switch st := v.Form().(type) {
	case domain.FormDrafting:
		data.Form = newFormData("Add New Product", "Submit", st.Draft, v.FormMessage())
	case domain.FormEditing:
		data.Form = newFormData("Edit Product", "Update", st.Buffer, v.FormMessage())
	}

	return data
}

func newFormData(title, submit string, f domain.ProductFields, message string) *formData {
	return &formData{
		Title:       title,
		SubmitLabel: submit,
		Message:     message,
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
	}
}

// Render пишет страницу целиком; при ошибке шаблона клиент получает 500.
func (p *Pages) Render(w http.ResponseWriter, data pageData) error {
	var buf bytes.Buffer
	if err := p.index.Execute(&buf, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
