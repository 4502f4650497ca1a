// README: Shared identifier, coordinate, and principal types.
package types

// ID is an opaque entity identifier.
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether the point is inside the latitude/longitude domain.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Role of an authenticated caller, taken from the identity provider's claims.
type Role string

const (
	RoleUser       Role = "user"
	RoleHotelAdmin Role = "hotel_admin"
	RoleAdmin      Role = "admin"
)

// Principal is the authenticated caller as seen by the domain services.
// The HTTP layer builds it from the verified token; services only check
// UID and Role and never touch token mechanics.
type Principal struct {
	UID  ID
	Role Role
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleHotelAdmin || p.Role == RoleAdmin
}
