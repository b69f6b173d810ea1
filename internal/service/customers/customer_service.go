package customers

import (
	"context"

	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/Domenick1991/flightbooker/internal/repository"
)

type CustomerUseCase interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// CustomerService is the customer directory collaborator.
type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

var _ CustomerUseCase = (*CustomerService)(nil)
