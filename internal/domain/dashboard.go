package domain

// Collection is one aggregate fetch result. A failed fetch yields no items
// and Failed set, so callers can tell "empty" from "unavailable".
type Collection[T any] struct {
	Items  []T  `json:"items"`
	Failed bool `json:"failed"`
}

// Dashboard is everything loaded for a signed-in customer.
type Dashboard struct {
	Trips        Collection[Trip]              `json:"trips"`
	Maintenance  Collection[MaintenanceRecord] `json:"maintenance"`
	Restaurants  Collection[RestaurantEntry]   `json:"restaurants"`
	Posts        Collection[CommunityPost]     `json:"community_posts"`
	Appointments Collection[Appointment]       `json:"appointments"`
}

// Collection names, as reported by Degraded.
const (
	CollectionTrips        = "trips"
	CollectionMaintenance  = "maintenance"
	CollectionRestaurants  = "restaurants"
	CollectionPosts        = "community_posts"
	CollectionAppointments = "appointments"
)

// Degraded lists the collections whose fetch failed.
func (d Dashboard) Degraded() []string {
	out := []string{}
	if d.Trips.Failed {
		out = append(out, CollectionTrips)
	}
	if d.Maintenance.Failed {
		out = append(out, CollectionMaintenance)
	}
	if d.Restaurants.Failed {
		out = append(out, CollectionRestaurants)
	}
	if d.Posts.Failed {
		out = append(out, CollectionPosts)
	}
	if d.Appointments.Failed {
		out = append(out, CollectionAppointments)
	}
	return out
}
