package availability

import (
	"context"
	"time"

	"fairway/models"

	"go.uber.org/zap"
)

// Service answers "which start times can still be offered on this date".
type Service interface {
	GetDaySlots(ctx context.Context, date string, now time.Time) ([]models.SlotOffer, error)
}

// DefaultService wires the fetcher and the slot engine together, with an
// optional cache in front.
type DefaultService struct {
	Fetcher  *Fetcher
	Params   Params
	Cache    SlotCache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func (s *DefaultService) GetDaySlots(ctx context.Context, date string, now time.Time) ([]models.SlotOffer, error) {
	cacheKey := "slots:" + date
	if s.Cache != nil {
		if slots, ok := s.Cache.Get(ctx, cacheKey); ok {
			return slots, nil
		}
	}

	set, err := s.Fetcher.FetchBusyIntervals(ctx, date)
	if err != nil {
		s.Logger.Error("busy interval fetch failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	slots := ComputeSlots(date, now, s.Fetcher.Registry.All(), set, s.Params)

	if s.Cache != nil {
		s.Cache.Set(ctx, cacheKey, slots, s.CacheTTL)
	}
	return slots, nil
}
