// README: Order service implements pricing, placement, and state transitions.
package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tiffin/internal/modules/catalog"
	"tiffin/internal/types"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("order not found")
	ErrBelowMinimum  = errors.New("cart subtotal below minimum order amount")
	ErrInvalidState  = errors.New("invalid state transition")
	ErrConflict      = errors.New("order state conflict")
	ErrForbidden     = errors.New("caller not permitted")
	ErrAlreadyExists = errors.New("review already exists")
	ErrMenuChanged   = errors.New("menu changed while placing order")
)

// Catalog is the hotel/menu read model consumed at pricing time.
type Catalog interface {
	GetHotel(ctx context.Context, id types.ID) (*catalog.Hotel, error)
	AvailableMenuItems(ctx context.Context, hotelID types.ID) ([]*catalog.MenuItem, error)
}

// Notifier delivers confirmations and status updates to customers and
// hotels. Failures never undo a committed order.
type Notifier interface {
	OrderCreated(ctx context.Context, o *Order, items []OrderItem, hotelEmail string) error
	OrderStatusChanged(ctx context.Context, o *Order) error
}

type Service struct {
	store    *Store
	catalog  Catalog
	notifier Notifier
	log      *slog.Logger
}

func NewService(store *Store, cat Catalog, notifier Notifier, log *slog.Logger) *Service {
	return &Service{store: store, catalog: cat, notifier: notifier, log: log}
}

type PlaceCommand struct {
	UserID          types.ID
	HotelID         types.ID
	Lines           []CartLine
	DeliveryAddress string
	DeliveryNotes   *string
	DeliveryTime    *time.Time
	PaymentMethod   PaymentMethod
}

// Place validates the cart against a fresh catalog snapshot, prices it,
// and commits the order with its items in one transaction. The store
// re-checks every item inside that transaction, so the snapshot taken here
// is never trusted across the commit boundary.
func (s *Service) Place(ctx context.Context, cmd PlaceCommand) (*Order, error) {
	if cmd.UserID == "" || cmd.HotelID == "" || cmd.DeliveryAddress == "" {
		return nil, ErrBadRequest
	}
	if !cmd.PaymentMethod.Valid() {
		return nil, ErrBadRequest
	}

	// missing and inactive hotels are indistinguishable to the caller
	hotel, err := s.catalog.GetHotel(ctx, cmd.HotelID)
	if err != nil {
		return nil, err
	}
	if !hotel.IsActive {
		return nil, catalog.ErrNotFound
	}

	menu, err := s.catalog.AvailableMenuItems(ctx, hotel.ID)
	if err != nil {
		return nil, err
	}
	available := make(map[types.ID]*catalog.MenuItem, len(menu))
	for _, m := range menu {
		available[m.ID] = m
	}

	quote, err := priceCart(hotel, available, cmd.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		ID:              types.ID(uuid.NewString()),
		Number:          newOrderNumber(now),
		UserID:          cmd.UserID,
		HotelID:         hotel.ID,
		Status:          StatusPending,
		StatusVersion:   0,
		PaymentMethod:   cmd.PaymentMethod,
		PaymentStatus:   PaymentPending,
		DeliveryAddress: cmd.DeliveryAddress,
		DeliveryNotes:   cmd.DeliveryNotes,
		DeliveryTime:    cmd.DeliveryTime,
		Subtotal:        quote.Subtotal,
		DeliveryFee:     quote.DeliveryFee,
		TotalAmount:     quote.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]OrderItem, len(quote.Items))
	copy(items, quote.Items)
	for i := range items {
		items[i].OrderID = o.ID
	}

	if err := s.store.CreateOrder(ctx, o, items); err != nil {
		return nil, err
	}

	s.notifyCreated(ctx, o, items, hotel.Email)
	return o, nil
}

// Get returns an order to its owner or an operator.
func (s *Service) Get(ctx context.Context, id types.ID, p types.Principal) (*Order, []OrderItem, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o.UserID != p.UID && !p.IsOperator() {
		return nil, nil, ErrForbidden
	}
	items, err := s.store.Items(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

type TransitionCommand struct {
	OrderID types.ID
	Caller  types.Principal
	To      Status
}

// Transition applies one lifecycle step with a read-then-write optimistic
// check: a concurrent writer that moves the order first wins and this call
// fails with ErrConflict. Cancellation is permission-gated separately and
// marks the payment refunded in the same write.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (*Order, error) {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if cmd.To == StatusCancelled {
		// only the owning user or a platform admin may cancel
		if o.UserID != cmd.Caller.UID && cmd.Caller.Role != types.RoleAdmin {
			return nil, ErrForbidden
		}
	} else if !cmd.Caller.IsOperator() {
		return nil, ErrForbidden
	}

	if !CanTransition(o.Status, cmd.To) {
		return nil, ErrInvalidState
	}

	var pay *PaymentStatus
	if cmd.To == StatusCancelled {
		refunded := PaymentRefunded
		pay = &refunded
	}

	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, cmd.To, o.StatusVersion, pay)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	actorID := cmd.Caller.UID
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   cmd.To,
		ActorRole:  string(cmd.Caller.Role),
		ActorID:    &actorID,
		CreatedAt:  time.Now().UTC(),
	})

	updated, err := s.store.Get(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, updated)
	return updated, nil
}

// Cancel is the owner-facing shorthand for a transition to cancelled.
func (s *Service) Cancel(ctx context.Context, orderID types.ID, caller types.Principal) (*Order, error) {
	return s.Transition(ctx, TransitionCommand{OrderID: orderID, Caller: caller, To: StatusCancelled})
}

type ReviewCommand struct {
	OrderID types.ID
	Caller  types.Principal
	Rating  int
	Comment string
}

// AttachReview records the owner's review of a delivered order, at most
// once per (order, user) pair.
func (s *Service) AttachReview(ctx context.Context, cmd ReviewCommand) error {
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.UserID != cmd.Caller.UID {
		return ErrForbidden
	}
	if o.Status != StatusDelivered {
		return ErrInvalidState
	}
	return s.store.InsertReview(ctx, &Review{
		OrderID:   o.ID,
		UserID:    cmd.Caller.UID,
		Rating:    cmd.Rating,
		Comment:   cmd.Comment,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Service) notifyCreated(ctx context.Context, o *Order, items []OrderItem, hotelEmail string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderCreated(ctx, o, items, hotelEmail); err != nil && s.log != nil {
		s.log.Error("order created notification failed", "order", o.Number, "err", err)
	}
}

func (s *Service) notifyStatus(ctx context.Context, o *Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderStatusChanged(ctx, o); err != nil && s.log != nil {
		s.log.Error("status notification failed", "order", o.Number, "status", o.Status, "err", err)
	}
}

// newOrderNumber builds the human-facing identifier: a date prefix for
// support staff plus a crypto/rand suffix. Ten hex chars keep the daily
// collision odds negligible at any realistic volume; a timestamp-derived
// suffix would not.
func newOrderNumber(now time.Time) string {
	var b [5]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("TF-%s-%s", now.Format("20060102"), hex.EncodeToString(b[:]))
}
