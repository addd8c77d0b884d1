package services

import (
	"context"
	"fmt"

	"dayboard/internal/core"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
)

// PlannerService owns time-block mutations.
type PlannerService struct {
	storage  *storage.SQLiteRepository
	notifier WidgetNotifier
}

func NewPlannerService(storage *storage.SQLiteRepository, notifier WidgetNotifier) *PlannerService {
	return &PlannerService{storage: storage, notifier: notifier}
}

// CreateTimeBlock saves a time block and refreshes the planner widget.
func (s *PlannerService) CreateTimeBlock(ctx context.Context, b core.TimeBlock) (core.TimeBlock, error) {
	created, err := s.storage.CreateTimeBlock(ctx, b)
	if err != nil {
		return core.TimeBlock{}, fmt.Errorf("save time block: %w", err)
	}

	s.notify(ctx, "time_block_created")
	return created, nil
}

// UpdateTimeBlock replaces a stored time block.
func (s *PlannerService) UpdateTimeBlock(ctx context.Context, b core.TimeBlock) error {
	if err := s.storage.UpdateTimeBlock(ctx, b); err != nil {
		return fmt.Errorf("update time block: %w", err)
	}

	s.notify(ctx, "time_block_updated")
	return nil
}

// DeleteTimeBlock removes a time block.
func (s *PlannerService) DeleteTimeBlock(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTimeBlock(ctx, id); err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}

	s.notify(ctx, "time_block_deleted")
	return nil
}

// TimeBlocksForDate lists the blocks scheduled on a date.
func (s *PlannerService) TimeBlocksForDate(ctx context.Context, date core.Date) ([]core.TimeBlock, error) {
	return s.storage.TimeBlocksForDate(ctx, date)
}

func (s *PlannerService) notify(ctx context.Context, reason string) {
	if s.notifier != nil {
		s.notifier.WidgetChanged(ctx, snapshot.KindPlanner, reason)
	}
}
