package repair

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pantry-planner/domain"
	"pantry-planner/entities"
)

type (
	// RepairService heals inventory items whose receipt linkage has
	// drifted. Nulling targets dangling references, adoption targets
	// absent ones; the two never touch the same orphan.
	RepairService interface {
		FindOrphans(ctx context.Context) (domain.OrphanReport, error)
		RepairByNulling(ctx context.Context) (int64, error)
		RepairByAdoption(ctx context.Context) (domain.AdoptionResult, error)
	}

	repairService struct {
		repairRepository RepairRepository
		log              *logrus.Logger
	}
)

func NewRepairService(repairRepository RepairRepository, log *logrus.Logger) RepairService {
	return &repairService{
		repairRepository: repairRepository,
		log:              log,
	}
}

func (s *repairService) FindOrphans(ctx context.Context) (domain.OrphanReport, error) {
	dangling, err := s.repairRepository.FindDangling(ctx)
	if err != nil {
		return domain.OrphanReport{}, fmt.Errorf("finding dangling references: %w", err)
	}

	missing, err := s.repairRepository.FindMissing(ctx)
	if err != nil {
		return domain.OrphanReport{}, fmt.Errorf("finding missing references: %w", err)
	}

	return domain.OrphanReport{
		Dangling: toOrphanItems(dangling),
		Missing:  toOrphanItems(missing),
	}, nil
}

func (s *repairService) RepairByNulling(ctx context.Context) (int64, error) {
	cleared, err := s.repairRepository.NullDanglingReferences(ctx)
	if err != nil {
		return 0, fmt.Errorf("nulling dangling references: %w", err)
	}

	s.log.WithField("cleared", cleared).Info("dangling receipt references nulled")
	return cleared, nil
}

func (s *repairService) RepairByAdoption(ctx context.Context) (domain.AdoptionResult, error) {
	receipt, adopted, err := s.repairRepository.AdoptMissing(ctx, domain.RecoveryShopLabel)
	if err != nil {
		return domain.AdoptionResult{}, fmt.Errorf("adopting orphans: %w", err)
	}
	if adopted == 0 {
		s.log.Info("no orphaned items to adopt")
		return domain.AdoptionResult{}, nil
	}

	s.log.WithFields(logrus.Fields{
		"receipt_id": receipt.ID,
		"adopted":    adopted,
		"total":      receipt.Total.String(),
	}).Info("orphaned items adopted by recovery receipt")

	return domain.AdoptionResult{
		ReceiptID:    receipt.ID,
		AdoptedCount: adopted,
		Total:        receipt.Total.InexactFloat64(),
	}, nil
}

func toOrphanItems(items []*entities.InventoryItem) []domain.OrphanItem {
	result := make([]domain.OrphanItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.OrphanItem{
			ID:        item.ID,
			Name:      item.Name,
			ReceiptID: item.ReceiptID,
		})
	}
	return result
}
