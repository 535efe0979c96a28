package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/JonathanBek0501/auragameclub/internal/domain"
	"github.com/JonathanBek0501/auragameclub/internal/ports"
)

// Service manages the product catalog. Catalog edits never touch line items
// already attached to a session; those carry their own price snapshot.
type Service struct {
	state *domain.State
	log   *zap.Logger
}

func NewService(state *domain.State, log *zap.Logger) ports.CatalogService {
	return &Service{
		state: state,
		log:   log,
	}
}

func (s *Service) Products() []domain.Product {
	s.state.Lock()
	defer s.state.Unlock()

	return append([]domain.Product(nil), s.state.Products...)
}

func (s *Service) Add(name string, unitPrice int64) (*domain.Product, error) {
	s.state.Lock()
	defer s.state.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if unitPrice <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	product := domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: unitPrice,
	}
	s.state.Products = append(s.state.Products, product)

	s.log.Info("Product added",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int64("unit_price", product.UnitPrice),
	)
	return &product, nil
}

// Update changes a product's name and/or price. An empty name or a zero price
// keeps the current value.
func (s *Service) Update(id, name string, unitPrice int64) (*domain.Product, error) {
	s.state.Lock()
	defer s.state.Unlock()

	product := s.state.Product(id)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if unitPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if name = strings.TrimSpace(name); name != "" {
		product.Name = name
	}
	if unitPrice > 0 {
		product.UnitPrice = unitPrice
	}

	updated := *product
	return &updated, nil
}

func (s *Service) Remove(id string) error {
	s.state.Lock()
	defer s.state.Unlock()

	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			s.state.Products = append(s.state.Products[:i], s.state.Products[i+1:]...)
			s.log.Info("Product removed", zap.String("product_id", id))
			return nil
		}
	}
	return domain.ErrProductNotFound
}
