package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
)

type itemOp int

const (
	opSoftDelete itemOp = iota
	opRestore
	opPurge
)

func (op itemOp) String() string {
	switch op {
	case opSoftDelete:
		return "soft_delete"
	case opRestore:
		return "restore"
	default:
		return "purge"
	}
}

func applyOp[T common.Item[T]](items []T, op itemOp, id string, at time.Time) ([]T, bool) {
	switch op {
	case opSoftDelete:
		return common.SoftDelete(items, id, at)
	case opRestore:
		return common.Restore(items, id)
	default:
		return common.Purge(items, id)
	}
}

func mutate[T common.Item[T]](
	ctx context.Context,
	partnerID string,
	items []T,
	op itemOp,
	id string,
	at time.Time,
	replace func(context.Context, string, []T) error,
) error {
	out, ok := applyOp(items, op, id, at)
	if !ok {
		return common.NotFoundf("item %s", id)
	}
	return replace(ctx, partnerID, out)
}

func (s *PartnershipService) itemLifecycle(ctx context.Context, partnerID string, collection partner.Collection, itemID string, op itemOp) error {
	d, err := s.repo.GetPartnership(ctx, partnerID)
	if err != nil {
		return fmt.Errorf("load partnership: %w", err)
	}

	at := s.now()
	switch collection {
	case partner.CollectionIntroductions:
		err = mutate(ctx, partnerID, d.Introductions, op, itemID, at, s.repo.ReplaceIntroductions)
	case partner.CollectionEvents:
		err = mutate(ctx, partnerID, d.Events, op, itemID, at, s.repo.ReplaceEvents)
	case partner.CollectionPublications:
		err = mutate(ctx, partnerID, d.Publications, op, itemID, at, s.repo.ReplacePublications)
	case partner.CollectionQuarterlyReports:
		err = mutate(ctx, partnerID, d.QuarterlyReports, op, itemID, at, s.repo.ReplaceQuarterlyReports)
	case partner.CollectionMonthlyCheckIns:
		err = mutate(ctx, partnerID, d.MonthlyCheckIns, op, itemID, at, s.repo.ReplaceMonthlyCheckIns)
	default:
		return common.NewValidationError("collection", fmt.Sprintf("unknown collection %q", collection))
	}
	if err != nil {
		return fmt.Errorf("%s %s item: %w", op, collection, err)
	}

	s.log.Info("Collection item lifecycle", "partner_id", partnerID, "collection", collection, "item_id", itemID, "op", op.String())
	return nil
}

// SoftDeleteItem moves one child item to the recycle bin
func (s *PartnershipService) SoftDeleteItem(ctx context.Context, partnerID string, collection partner.Collection, itemID string) error {
	return s.itemLifecycle(ctx, partnerID, collection, itemID, opSoftDelete)
}

// RestoreItem clears the deletedAt of one child item
func (s *PartnershipService) RestoreItem(ctx context.Context, partnerID string, collection partner.Collection, itemID string) error {
	return s.itemLifecycle(ctx, partnerID, collection, itemID, opRestore)
}

// PurgeItem permanently removes one child item
func (s *PartnershipService) PurgeItem(ctx context.Context, partnerID string, collection partner.Collection, itemID string) error {
	return s.itemLifecycle(ctx, partnerID, collection, itemID, opPurge)
}

// SoftDeletePartner moves the partner to the recycle bin. Its collections
// are left as they are.
func (s *PartnershipService) SoftDeletePartner(ctx context.Context, id string) error {
	at := s.now()
	if err := s.repo.SetPartnerDeletedAt(ctx, id, &at); err != nil {
		return fmt.Errorf("soft delete partner: %w", err)
	}
	s.log.Info("Partner soft-deleted", "partner_id", id)
	return nil
}

func (s *PartnershipService) RestorePartner(ctx context.Context, id string) error {
	if err := s.repo.SetPartnerDeletedAt(ctx, id, nil); err != nil {
		return fmt.Errorf("restore partner: %w", err)
	}
	s.log.Info("Partner restored", "partner_id", id)
	return nil
}

// PermanentlyDeletePartner removes the partner and its collections. An
// unknown id succeeds.
func (s *PartnershipService) PermanentlyDeletePartner(ctx context.Context, id string) error {
	if err := s.repo.DeletePartner(ctx, id); err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	s.log.Info("Partner permanently deleted", "partner_id", id)
	return nil
}
