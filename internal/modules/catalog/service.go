// README: Catalog service validates hotel writes and mirrors locations into the GEO index.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"tiffin/internal/types"
)

var ErrBadRequest = errors.New("invalid catalog entry")

// LocationIndex mirrors hotel coordinates into a hot geo index so that
// proximity search can prefilter without a table scan. Implemented by the
// search module's Redis store; index failures are logged, never surfaced,
// because the SQL bounding-box path remains authoritative.
type LocationIndex interface {
	AddHotel(ctx context.Context, id types.ID, pos types.Point) error
	RemoveHotel(ctx context.Context, id types.ID) error
}

type Service struct {
	store *Store
	index LocationIndex
	log   *slog.Logger
}

func NewService(store *Store, index LocationIndex, log *slog.Logger) *Service {
	return &Service{store: store, index: index, log: log}
}

func (s *Service) GetHotel(ctx context.Context, id types.ID) (*Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

func (s *Service) SaveHotel(ctx context.Context, h *Hotel) error {
	if h.ID == "" || h.Name == "" {
		return ErrBadRequest
	}
	if h.DeliveryRadiusM < MinDeliveryRadiusM || h.DeliveryRadiusM > MaxDeliveryRadiusM {
		return ErrBadRequest
	}
	if h.DeliveryFee.Amount < 0 || h.MinOrderAmount.Amount < 0 {
		return ErrBadRequest
	}
	if h.Location != nil && !h.Location.Valid() {
		return ErrBadRequest
	}
	if err := s.store.SaveHotel(ctx, h); err != nil {
		return err
	}
	s.syncIndex(ctx, h)
	return nil
}

func (s *Service) UpsertMenuItem(ctx context.Context, m *MenuItem) error {
	if m.ID == "" || m.HotelID == "" || m.Name == "" || m.Price.Amount <= 0 {
		return ErrBadRequest
	}
	if _, err := s.store.GetHotel(ctx, m.HotelID); err != nil {
		return err
	}
	return s.store.UpsertMenuItem(ctx, m)
}

func (s *Service) SetMenuItemAvailability(ctx context.Context, id types.ID, available bool) error {
	return s.store.SetMenuItemAvailability(ctx, id, available)
}

func (s *Service) syncIndex(ctx context.Context, h *Hotel) {
	if s.index == nil {
		return
	}
	var err error
	if h.IsActive && h.Location != nil {
		err = s.index.AddHotel(ctx, h.ID, *h.Location)
	} else {
		err = s.index.RemoveHotel(ctx, h.ID)
	}
	if err != nil && s.log != nil {
		s.log.Error("geo index sync failed", "hotel_id", h.ID, "err", err)
	}
}
