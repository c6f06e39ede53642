package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/e"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductResponse — продукт в JSON-снимке представления.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// FormResponse — состояние формы: mode = closed | drafting | editing.
type FormResponse struct {
	Mode        string `json:"mode"`
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message,omitempty"`
}

type FailureResponse struct {
	Op    string `json:"op"`
	Error string `json:"error"`
}

// ViewResponse — снимок представления списка продуктов.
type ViewResponse struct {
	Status      string            `json:"status"`
	Query       string            `json:"query"`
	Total       int               `json:"total"`
	Products    []ProductResponse `json:"products"`
	Form        FormResponse      `json:"form"`
	PageError   string            `json:"page_error,omitempty"`
	LastFailure *FailureResponse  `json:"last_failure,omitempty"`
}

// FormRequest — значения полей формы для /form/submit.
type FormRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	var remote *e.RemoteError
	switch {
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrFormClosed):
		return http.StatusConflict, e.ErrFormClosed.Error()
	case errors.As(err, &remote):
		return http.StatusBadGateway, e.ErrRemote.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// NewViewResponse строит снимок представления с фильтром query.
func NewViewResponse(v *usecase.ProductListView, query string) *ViewResponse {
	res := &ViewResponse{
		Status:    v.Status().String(),
		Query:     query,
		Total:     len(v.Products()),
		Products:  make([]ProductResponse, 0),
		Form:      newFormResponse(v.Form(), v.FormMessage()),
		PageError: v.PageError(),
	}

	for p := range v.Filter(query) {
		res.Products = append(res.Products, ProductResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			Price:       p.Price.String(),
			Description: p.Description,
		})
	}

	if f := v.LastFailure(); f != nil {
		res.LastFailure = &FailureResponse{Op: string(f.Op), Error: f.Err.Error()}
	}

	return res
}

func newFormResponse(state domain.FormState, message string) FormResponse {
	switch st := state.(type) {
	case domain.FormDrafting:
		return FormResponse{
			Mode:        "drafting",
			Name:        st.Draft.Name,
			Price:       st.Draft.Price,
			Description: st.Draft.Description,
			Message:     message,
		}
	case domain.FormEditing:
		return FormResponse{
			Mode:        "editing",
			ID:          st.ID.String(),
			Name:        st.Buffer.Name,
			Price:       st.Buffer.Price,
			Description: st.Buffer.Description,
			Message:     message,
		}
	default:
		return FormResponse{Mode: "closed"}
	}
}

// parseFormRequest читает поля формы из JSON или из application/x-www-form-urlencoded.
func parseFormRequest(w http.ResponseWriter, r *http.Request) (*FormRequest, error) {
	const maxFormSize = 64 << 10

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req FormRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxFormSize)).Decode(&req); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
		}
		return &req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	return &FormRequest{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
	}, nil
}

// queryFrom достаёт поисковую строку из query string или тела формы.
func queryFrom(r *http.Request) string {
	if q := r.URL.Query().Get("q"); q != "" {
		return q
	}
	return r.PostFormValue("q")
}
