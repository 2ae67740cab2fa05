package usecase

import (
	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// StatsUseCase consultas agregadas de inventario por empresa.
type StatsUseCase struct {
	repo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// ByCompany devuelve el resumen de cada bodega de la empresa del principal.
// Requiere el permiso view_statistics.
func (uc *StatsUseCase) ByCompany(principal *guard.Principal) ([]dto.StoreStatsResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	if !principal.HasPermission(entity.PermViewStatistics) {
		return nil, domain.ErrForbidden
	}
	stats, err := uc.repo.StatsByCompany(principal.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.StoreStatsResponse{
			StoreID:       s.StoreID,
			StoreName:     s.StoreName,
			ProductCount:  s.ProductCount,
			TotalQuantity: s.TotalQuantity,
		})
	}
	return out, nil
}
