package tui

import (
	"context"

	"github.com/DRSN-tech/products-board/internal/domain"
	"github.com/DRSN-tech/products-board/internal/usecase"
	tea "github.com/charmbracelet/bubbletea"
)

// Результаты удалённых вызовов. Update сверяет их с представлением через Apply*.
type (
	loadedMsg struct {
		products []domain.Product
		err      error
	}

	createdMsg struct {
		draft   uint64
		product *domain.Product
		err     error
	}

	updatedMsg struct {
		id      domain.ProductID
		product *domain.Product
		err     error
	}

	deletedMsg struct {
		id  domain.ProductID
		err error
	}
)

func loadCmd(ctx context.Context, repo usecase.ProductRepository) tea.Cmd {
	return func() tea.Msg {
		products, err := repo.List(ctx)
		return loadedMsg{products: products, err: err}
	}
}

func commitCmd(ctx context.Context, repo usecase.ProductRepository, m usecase.Mutation) tea.Cmd {
	return func() tea.Msg {
		if m.Kind == usecase.MutationCreate {
			created, err := repo.Create(ctx, &m.Product)
			return createdMsg{draft: m.Draft, product: created, err: err}
		}
		updated, err := repo.Update(ctx, &m.Product)
		return updatedMsg{id: m.Product.ID, product: updated, err: err}
	}
}

func deleteCmd(ctx context.Context, repo usecase.ProductRepository, id domain.ProductID) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: repo.Delete(ctx, id)}
	}
}
