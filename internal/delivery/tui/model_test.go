package tui

import (
	"context"
	"net/http"
	"testing"

	"github.com/DRSN-tech/products-board/internal/domain"
	apiRepo "github.com/DRSN-tech/products-board/internal/repository/api"
	"github.com/DRSN-tech/products-board/internal/repository/api/apitest"
	"github.com/DRSN-tech/products-board/internal/repository/api/converter"
	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *apitest.Server) {
	t.Helper()

	api := apitest.NewServer(t,
		*domain.NewProduct("1", "Widget", decimal.NewFromInt(10), "A small widget"),
		*domain.NewProduct("2", "Gizmo", decimal.RequireFromString("2.5"), "Shiny"),
	)
	log := logger.NewNopLogger()
	repo := apiRepo.NewProductRepo(api.Client(), api.URL, converter.NewProductConverterImpl(), log)

	return New(context.Background(), usecase.NewProductListView(log), repo, log), api
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// run выполняет удалённый вызов синхронно и передаёт результат в Update.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, key(string(r)))
	}
	return m
}

func loaded(t *testing.T) (Model, *apitest.Server) {
	t.Helper()
	m, api := newTestModel(t)
	return run(t, m, m.Init()), api
}

func TestModel_InitLoads(t *testing.T) {
	m, api := newTestModel(t)

	cmd := m.Init()
	assert.Equal(t, domain.StatusLoading, m.view.Status())

	m = run(t, m, cmd)
	assert.Equal(t, domain.StatusReady, m.view.Status())
	assert.Len(t, m.visible, 2)
	assert.Contains(t, m.View(), "Widget")
	assert.Contains(t, m.View(), "R2.5")
	assert.Equal(t, 1, api.Count(http.MethodGet))
}

func TestModel_LoadFailure(t *testing.T) {
	m, api := newTestModel(t)
	api.Fail(http.MethodGet, http.StatusServiceUnavailable)

	m = run(t, m, m.Init())
	assert.Equal(t, domain.StatusLoadError, m.view.Status())
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "An error occurred while fetching data.")

	api.Recover(http.MethodGet)
	m, cmd := update(t, m, key("r"))
	m = run(t, m, cmd)
	assert.Equal(t, domain.StatusReady, m.view.Status())
	assert.Len(t, m.visible, 2)
}

func TestModel_Search(t *testing.T) {
	m, _ := loaded(t)

	m, _ = update(t, m, key("/"))
	require.Equal(t, modeSearch, m.mode)

	m = typeText(t, m, "GIZ")
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Gizmo", m.visible[0].Name)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.visible, 1)
	assert.Len(t, m.view.Products(), 2)
}

func TestModel_SearchDoesNotQuit(t *testing.T) {
	m, _ := loaded(t)

	m, _ = update(t, m, key("/"))
	m, _ = update(t, m, key("q"))
	assert.Equal(t, modeSearch, m.mode)
	assert.Equal(t, "q", m.search.Value())
	assert.Empty(t, m.visible)
}

func TestModel_AddProduct(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, key("a"))
	require.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "Add New Product")

	m = typeText(t, m, "Sprocket")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "4.75")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Toothed")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pending)
	m = run(t, m, cmd)

	assert.False(t, m.pending)
	assert.Equal(t, modeBrowse, m.mode)
	products := m.view.Products()
	require.Len(t, products, 3)
	assert.Equal(t, domain.ProductID("3"), products[2].ID)
	assert.Equal(t, "Sprocket", products[2].Name)
	assert.Equal(t, 1, api.Count(http.MethodPost))
	assert.Equal(t, 1, api.Count(http.MethodGet))
}

func TestModel_AddValidationStaysLocal(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, key("a"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "Error: Please fill in all fields.")
	assert.Zero(t, api.Count(http.MethodPost))
}

func TestModel_AddRemoteFailureKeepsForm(t *testing.T) {
	m, api := loaded(t)
	api.Fail(http.MethodPost, http.StatusInternalServerError)

	m, _ = update(t, m, key("a"))
	m = typeText(t, m, "Sprocket")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "3")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Toothed")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "Error: An error occurred while adding the product.")
	assert.Len(t, m.view.Products(), 2)
}

func TestModel_EditProduct(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, key("e"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Widget", m.inputs[0].Value())
	assert.Contains(t, m.View(), "Edit Product")

	m = typeText(t, m, " Pro")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	assert.Equal(t, modeBrowse, m.mode)
	products := m.view.Products()
	require.Len(t, products, 2)
	assert.Equal(t, domain.ProductID("1"), products[0].ID)
	assert.Equal(t, "Widget Pro", products[0].Name)
	assert.Equal(t, 1, api.Count(http.MethodPut))
}

func TestModel_CancelDiscardsDraft(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, key("a"))
	m = typeText(t, m, "Draft")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeBrowse, m.mode)
	assert.IsType(t, domain.FormClosed{}, m.view.Form())
	assert.Zero(t, api.Count(http.MethodPost))

	m, _ = update(t, m, key("a"))
	assert.Empty(t, m.inputs[0].Value())
}

func TestModel_DeleteSelected(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, key("d"))
	m = run(t, m, cmd)

	products := m.view.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	require.Len(t, api.Products(), 1)
}

func TestModel_DeleteFailureKeepsProduct(t *testing.T) {
	m, api := loaded(t)
	api.Fail(http.MethodDelete, http.StatusInternalServerError)

	m, cmd := update(t, m, key("d"))
	m = run(t, m, cmd)

	assert.Len(t, m.view.Products(), 2)
	require.NotNil(t, m.view.LastFailure())
	assert.Equal(t, usecase.OpDelete, m.view.LastFailure().Op)
}

func TestModel_Quit(t *testing.T) {
	m, _ := loaded(t)

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_StaleCreateKeepsNewDraft(t *testing.T) {
	m, api := loaded(t)

	m, _ = update(t, m, key("a"))
	m = typeText(t, m, "First")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "1")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "d")
	m, firstCmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, firstCmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, key("a"))
	m = typeText(t, m, "Second")
	assert.False(t, m.pending)

	m = run(t, m, firstCmd)

	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Second", m.inputs[0].Value())
	require.Len(t, m.view.Products(), 3)
	assert.Equal(t, "First", m.view.Products()[2].Name)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "5")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "x")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	assert.Equal(t, modeBrowse, m.mode)
	require.Len(t, m.view.Products(), 4)
	assert.Equal(t, "Second", m.view.Products()[3].Name)
	assert.Equal(t, 2, api.Count(http.MethodPost))
}
