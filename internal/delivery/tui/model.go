// Package tui — терминальный интерфейс списка продуктов на bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/usecase"
	"github.com/DRSN-tech/products-board/pkg/logger"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
)

const helpBrowse = "/ search • a add • e edit • d delete • r reload • q quit"

var fieldLabels = map[domain.Field]string{
	domain.FieldName:        "Name",
	domain.FieldPrice:       "Price",
	domain.FieldDescription: "Description",
}

// Model — состояние терминального интерфейса. Состояние списка и формы
// хранится в ProductListView, Model отвечает только за ввод и отрисовку.
type Model struct {
	ctx    context.Context
	view   *usecase.ProductListView
	repo   usecase.ProductRepository
	logger logger.Logger
	styles Styles

	table   table.Model
	search  textinput.Model
	inputs  []textinput.Model
	focus   int
	mode    mode
	pending bool
	visible []domain.Product
}

func New(ctx context.Context, view *usecase.ProductListView, repo usecase.ProductRepository, logger logger.Logger) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search products..."

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Price", Width: 12},
			{Title: "Description", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return Model{
		ctx:    ctx,
		view:   view,
		repo:   repo,
		logger: logger,
		styles: DefaultStyles(),
		table:  t,
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	m.view.BeginLoad()
	return loadCmd(m.ctx, m.repo)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case loadedMsg:
		m.view.ApplyLoad(msg.products, msg.err)
		m.refreshRows()
		return m, nil

	case createdMsg:
		if st, ok := m.view.Form().(domain.FormDrafting); ok && st.Seq == msg.draft {
			m.pending = false
		}
		m.view.ApplyCreated(msg.draft, msg.product, msg.err)
		m.afterCommit()
		return m, nil

	case updatedMsg:
		if st, ok := m.view.Form().(domain.FormEditing); ok && st.ID == msg.id {
			m.pending = false
		}
		m.view.ApplyUpdated(msg.id, msg.product, msg.err)
		m.afterCommit()
		return m, nil

	case deletedMsg:
		m.view.ApplyDeleted(msg.id, msg.err)
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.table.Blur()
		cmd := m.search.Focus()
		return m, cmd

	case "a":
		m.view.OpenDraft()
		cmd := m.openForm()
		return m, cmd

	case "e", "enter":
		id, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.view.OpenEdit(id); err != nil {
			m.logger.Debugf("edit %s: %v", id, err)
			return m, nil
		}
		cmd := m.openForm()
		return m, cmd

	case "d":
		id, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, deleteCmd(m.ctx, m.repo, id)

	case "r":
		m.view.BeginLoad()
		m.refreshRows()
		return m, loadCmd(m.ctx, m.repo)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch: enter и esc возвращают к списку, фильтр при этом сохраняется.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshRows()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view.Cancel()
		m.closeForm()
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		cmd := m.focusInput(m.focus + 1)
		return m, cmd

	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.focusInput(m.focus - 1)
		return m, cmd

	case tea.KeyEnter:
		if m.pending {
			return m, nil
		}
		mutation, err := m.view.PrepareCommit()
		if err != nil {
			return m, nil
		}
		m.pending = true
		return m, commitCmd(m.ctx, m.repo, mutation)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.view.SetField(domain.Fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

// openForm создаёт поля ввода из открытой формы представления.
func (m *Model) openForm() tea.Cmd {
	fields, _ := domain.FormFields(m.view.Form())

	m.inputs = make([]textinput.Model, len(domain.Fields))
	for i, field := range domain.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = field.String()
		in.SetValue(fields.Get(field))
		in.CursorEnd()
		m.inputs[i] = in
	}

	m.mode = modeForm
	m.pending = false
	m.table.Blur()
	return m.focusInput(0)
}

func (m *Model) closeForm() {
	m.inputs = nil
	m.focus = 0
	m.pending = false
	m.mode = modeBrowse
	m.table.Focus()
}

func (m *Model) focusInput(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

// afterCommit закрывает поля ввода, если представление закрыло форму.
func (m *Model) afterCommit() {
	if _, closed := m.view.Form().(domain.FormClosed); closed && m.mode == modeForm {
		m.closeForm()
	}
	m.refreshRows()
}

func (m *Model) refreshRows() {
	m.visible = m.view.Visible(m.search.Value())

	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		rows = append(rows, table.Row{p.Name, p.DisplayPrice(), p.Description})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(m.table.Cursor())
}

func (m Model) selected() (domain.ProductID, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return "", false
	}
	return m.visible[i].ID, true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Products"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.formView())
		return b.String()
	}

	switch m.view.Status() {
	case domain.StatusLoading:
		b.WriteString(m.styles.Status.Render("Loading..."))
		b.WriteString("\n")
	case domain.StatusLoadError:
		b.WriteString(m.styles.Error.Render(m.view.PageError()))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(fmt.Sprintf("%d of %d products", len(m.visible), len(m.view.Products()))))
	b.WriteString(m.styles.Help.Render(helpBrowse))
	return b.String()
}

func (m Model) formView() string {
	title, submit := "Add New Product", "Submit"
	if _, editing := m.view.Form().(domain.FormEditing); editing {
		title, submit = "Edit Product", "Update"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	for i, field := range domain.Fields {
		style := m.styles.Label
		if i == m.focus {
			style = m.styles.Active.Inherit(m.styles.Label)
		}
		label := style.Render(fieldLabels[field] + ":")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
		b.WriteString("\n")
	}

	if msg := m.view.FormMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + msg))
		b.WriteString("\n")
	}

	status := "enter " + submit + " • esc Cancel • tab next field"
	if m.pending {
		status = "Saving..."
	}
	b.WriteString(m.styles.Help.Render(status))

	return m.styles.Form.Render(b.String())
}

// Run запускает терминальный интерфейс и блокируется до выхода пользователя.
func Run(ctx context.Context, view *usecase.ProductListView, repo usecase.ProductRepository, logger logger.Logger) error {
	p := tea.NewProgram(New(ctx, view, repo, logger), tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Infof("terminal ui started")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	logger.Infof("terminal ui stopped")
	return nil
}
