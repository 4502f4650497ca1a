// README: Catalog store backed by PostgreSQL.
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiffin/internal/types"
)

var ErrNotFound = errors.New("catalog entry not found")

// Bounds is the rectangular coordinate prefilter used before exact
// distance computation.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const hotelColumns = `
	id, name, cuisine, email, address, lat, lng,
	delivery_radius_m, delivery_fee, min_order_amount, currency,
	is_active, created_at, updated_at`

func (s *Store) GetHotel(ctx context.Context, id types.ID) (*Hotel, error) {
	row := s.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, string(id))
	h, err := scanHotel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return h, err
}

// ListHotelsInBounds returns active hotels whose stored coordinates fall
// inside the box, optionally restricted to one cuisine. Hotels without a
// location are excluded by the lat/lng IS NOT NULL predicate.
func (s *Store) ListHotelsInBounds(ctx context.Context, b Bounds, cuisine string) ([]*Hotel, error) {
	query := `SELECT ` + hotelColumns + `
		FROM hotels
		WHERE is_active
		  AND lat IS NOT NULL AND lng IS NOT NULL
		  AND lat BETWEEN $1 AND $2
		  AND lng BETWEEN $3 AND $4`
	args := []any{b.MinLat, b.MaxLat, b.MinLng, b.MaxLng}
	if cuisine != "" {
		query += ` AND cuisine = $5`
		args = append(args, cuisine)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHotels(rows)
}

// HotelsByIDs fetches active hotels by id, used by the GEO-index fast path.
func (s *Store) HotelsByIDs(ctx context.Context, ids []types.ID) ([]*Hotel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}
	rows, err := s.db.Query(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE is_active AND id = ANY($1)`, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHotels(rows)
}

// AvailableMenuItems returns the hotel's currently orderable items.
// Callers treat the result as a snapshot valid for a single pricing pass.
func (s *Store) AvailableMenuItems(ctx context.Context, hotelID types.ID) ([]*MenuItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, hotel_id, name, description, price, currency, is_available, updated_at
		FROM menu_items
		WHERE hotel_id = $1 AND is_available`, string(hotelID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(
			&m.ID, &m.HotelID, &m.Name, &m.Description,
			&m.Price.Amount, &m.Price.Currency, &m.IsAvailable, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (s *Store) SaveHotel(ctx context.Context, h *Hotel) error {
	var lat, lng *float64
	if h.Location != nil {
		lat, lng = &h.Location.Lat, &h.Location.Lng
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO hotels (
			id, name, cuisine, email, address, lat, lng,
			delivery_radius_m, delivery_fee, min_order_amount, currency,
			is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW(),NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cuisine = EXCLUDED.cuisine,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			delivery_radius_m = EXCLUDED.delivery_radius_m,
			delivery_fee = EXCLUDED.delivery_fee,
			min_order_amount = EXCLUDED.min_order_amount,
			currency = EXCLUDED.currency,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`,
		string(h.ID), h.Name, h.Cuisine, h.Email, h.Address, lat, lng,
		h.DeliveryRadiusM, h.DeliveryFee.Amount, h.MinOrderAmount.Amount, h.DeliveryFee.Currency,
		h.IsActive,
	)
	return err
}

func (s *Store) UpsertMenuItem(ctx context.Context, m *MenuItem) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO menu_items (id, hotel_id, name, description, price, currency, is_available, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			is_available = EXCLUDED.is_available,
			updated_at = NOW()`,
		string(m.ID), string(m.HotelID), m.Name, m.Description,
		m.Price.Amount, m.Price.Currency, m.IsAvailable,
	)
	return err
}

func (s *Store) SetMenuItemAvailability(ctx context.Context, id types.ID, available bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE menu_items SET is_available = $1, updated_at = NOW() WHERE id = $2`,
		available, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanHotel(row pgx.Row) (*Hotel, error) {
	var h Hotel
	var lat, lng *float64
	err := row.Scan(
		&h.ID, &h.Name, &h.Cuisine, &h.Email, &h.Address, &lat, &lng,
		&h.DeliveryRadiusM, &h.DeliveryFee.Amount, &h.MinOrderAmount.Amount, &h.DeliveryFee.Currency,
		&h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		h.Location = &types.Point{Lat: *lat, Lng: *lng}
	}
	h.MinOrderAmount.Currency = h.DeliveryFee.Currency
	return &h, nil
}

func scanHotels(rows pgx.Rows) ([]*Hotel, error) {
	var hotels []*Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}
