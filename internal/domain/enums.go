package domain

// Gender is the two-value gender enum used at registration (L = Laki-laki,
// P = Perempuan).
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// Valid reports whether g is one of the two accepted values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Sport is the closed sport-category enum shared by coaches, courts, events
// and partner posts.
type Sport string

const (
	SportTennis      Sport = "tennis"
	SportBasketball  Sport = "basketball"
	SportSoccer      Sport = "soccer"
	SportBadminton   Sport = "badminton"
	SportVolleyball  Sport = "volleyball"
	SportPaddle      Sport = "paddle"
	SportFutsal      Sport = "futsal"
	SportTableTennis Sport = "table_tennis"
	SportSwimming    Sport = "swimming"
	SportJogging     Sport = "jogging"
)

var sports = map[Sport]bool{
	SportTennis:      true,
	SportBasketball:  true,
	SportSoccer:      true,
	SportBadminton:   true,
	SportVolleyball:  true,
	SportPaddle:      true,
	SportFutsal:      true,
	SportTableTennis: true,
	SportSwimming:    true,
	SportJogging:     true,
}

// Valid reports whether s is a known sport category.
func (s Sport) Valid() bool { return sports[s] }

// EventStatus is the availability status of an event.
type EventStatus string

const (
	EventAvailable   EventStatus = "available"
	EventUnavailable EventStatus = "unavailable"
)

// Valid reports whether st is a known event status.
func (st EventStatus) Valid() bool {
	return st == EventAvailable || st == EventUnavailable
}
