package marketplace

import "time"

// Gig is a service listing as stored and returned by the API.
type Gig struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Pricing          string    `json:"pricing"`
	DeliveryTimeDays int       `json:"delivery_time_days"`
	RevisionCount    int       `json:"revision_count"`
	Tags             []string  `json:"tags"`
	Requirements     string    `json:"requirements"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Filter narrows public discovery.
type Filter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

// Listing limits per role; admins are not limited.
var listingLimits = map[string]int{
	"fan":     3,
	"creator": 50,
}
