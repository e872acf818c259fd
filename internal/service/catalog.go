package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/repository"
)

// CatalogService is the book CRUD surface. Availability arithmetic stays in
// the inventory repository; deleting or shrinking a title with copies still
// on loan is refused there.
type CatalogService struct {
	log       *zap.Logger
	inventory repository.InventoryRepository
}

func NewCatalogService(inventory repository.InventoryRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		log:       log.Named("catalog"),
		inventory: inventory,
	}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.inventory.ListBooks(ctx)
}

func (s *CatalogService) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.inventory.GetBook(ctx, id)
}

func (s *CatalogService) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.inventory.CreateBook(ctx, req)
}

func (s *CatalogService) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	return s.inventory.UpdateBook(ctx, id, req)
}

func (s *CatalogService) DeleteBook(ctx context.Context, id int) error {
	return s.inventory.DeleteBook(ctx, id)
}
