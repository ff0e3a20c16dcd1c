package screen

import (
	"time"

	"github.com/garageconnect/customer/internal/domain"
)

const (
	RecentTripCount    = 3
	TopRestaurantCount = 5
)

// Input is everything the composer needs; Compose reads nothing else.
type Input struct {
	Theme     domain.Theme
	Profile   *domain.Profile
	Dashboard domain.Dashboard
	Screen    Screen
	Overlay   Overlay
	Now       time.Time
}

// View is the view model for one render. Exactly one of the screen
// sections is set, matching Screen.
type View struct {
	Screen    Screen          `json:"screen"`
	Overlay   Overlay         `json:"overlay"`
	Theme     domain.Theme    `json:"theme"`
	Profile   *domain.Profile `json:"profile,omitempty"`
	Degraded  []string        `json:"degraded"`
	Home      *HomeView       `json:"home,omitempty"`
	Trips     *TripsView      `json:"trips,omitempty"`
	Explorer  *ExplorerView   `json:"explorer,omitempty"`
	Community *CommunityView  `json:"community,omitempty"`
	Service   *ServiceView    `json:"service,omitempty"`
}

type HomeView struct {
	TotalDistance   float64                   `json:"total_km"`
	TripCount       int                       `json:"trip_count"`
	NextAppointment *domain.Appointment       `json:"next_appointment,omitempty"`
	LastService     *domain.MaintenanceRecord `json:"last_service,omitempty"`
	// DistanceToService is next_service_km less the current reading; it
	// goes negative once the service is overdue.
	DistanceToService *float64      `json:"km_to_next_service,omitempty"`
	RecentTrips       []domain.Trip `json:"recent_trips"`
}

type TripsView struct {
	Trips []domain.Trip `json:"trips"`
}

type Marker struct {
	RestaurantID string                    `json:"restaurant_id"`
	Name         string                    `json:"name"`
	Category     domain.RestaurantCategory `json:"type"`
	Rating       int                       `json:"rating"`
	Lat          float64                   `json:"lat"`
	Lng          float64                   `json:"lng"`
}

type ExplorerView struct {
	Markers []Marker                 `json:"markers"`
	Top     []domain.RestaurantEntry `json:"top"`
	Total   int                      `json:"total"`
}

type CommunityView struct {
	Posts []domain.CommunityPost `json:"posts"`
}

type ServiceView struct {
	Pending     []domain.Appointment       `json:"pending_appointments"`
	Maintenance []domain.MaintenanceRecord `json:"maintenance"`
}

// Compose selects the screen variant and projects the collections onto it.
// Collections are assumed to be in their stored order (newest or best
// first).
func Compose(in Input) View {
	v := View{
		Screen:   in.Screen,
		Overlay:  in.Overlay,
		Theme:    in.Theme,
		Profile:  in.Profile,
		Degraded: in.Dashboard.Degraded(),
	}
	if v.Screen == "" {
		v.Screen = ScreenHome
	}
	if v.Overlay == "" {
		v.Overlay = OverlayNone
	}

	d := in.Dashboard
	switch v.Screen {
	case ScreenHome:
		v.Home = composeHome(in.Profile, d, in.Now)
	case ScreenTrips:
		v.Trips = &TripsView{Trips: nonNil(d.Trips.Items)}
	case ScreenExplorer:
		v.Explorer = composeExplorer(d.Restaurants.Items)
	case ScreenCommunity:
		v.Community = &CommunityView{Posts: nonNil(d.Posts.Items)}
	case ScreenService:
		v.Service = &ServiceView{
			Pending:     pendingAppointments(d.Appointments.Items),
			Maintenance: nonNil(d.Maintenance.Items),
		}
	}
	return v
}

func composeHome(p *domain.Profile, d domain.Dashboard, now time.Time) *HomeView {
	h := &HomeView{
		TripCount:   len(d.Trips.Items),
		RecentTrips: nonNil(firstN(d.Trips.Items, RecentTripCount)),
	}
	for _, t := range d.Trips.Items {
		h.TotalDistance += t.Distance
	}

	// Soonest pending appointment still in the future.
	for i := range d.Appointments.Items {
		a := d.Appointments.Items[i]
		if a.Status != domain.AppointmentPending || !a.Date.After(now) {
			continue
		}
		if h.NextAppointment == nil || a.Date.Before(h.NextAppointment.Date) {
			h.NextAppointment = &a
		}
	}

	for i := range d.Maintenance.Items {
		m := d.Maintenance.Items[i]
		if m.Type == domain.MaintenanceService {
			h.LastService = &m
			break
		}
	}
	if h.LastService != nil && h.LastService.NextServiceDistance != nil && p != nil {
		left := *h.LastService.NextServiceDistance - p.CurrentDistance
		h.DistanceToService = &left
	}
	return h
}

func composeExplorer(entries []domain.RestaurantEntry) *ExplorerView {
	e := &ExplorerView{
		Markers: []Marker{},
		Top:     nonNil(firstN(entries, TopRestaurantCount)),
		Total:   len(entries),
	}
	for _, r := range entries {
		if !r.HasCoordinates() {
			continue
		}
		e.Markers = append(e.Markers, Marker{
			RestaurantID: r.ID.String(),
			Name:         r.Name,
			Category:     r.Category,
			Rating:       r.Rating,
			Lat:          *r.Lat,
			Lng:          *r.Lng,
		})
	}
	return e
}

func pendingAppointments(all []domain.Appointment) []domain.Appointment {
	out := []domain.Appointment{}
	for _, a := range all {
		if a.Status == domain.AppointmentPending {
			out = append(out, a)
		}
	}
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
