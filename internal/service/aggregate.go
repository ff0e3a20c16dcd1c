package service

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CommunityPostLimit caps the community feed.
const CommunityPostLimit = 20

// Aggregator loads the collections shown to a signed-in customer.
type Aggregator struct {
	trips        domain.TripStore
	maintenance  domain.MaintenanceStore
	appointments domain.AppointmentStore
	restaurants  domain.RestaurantStore
	posts        domain.CommunityPostStore
	logger       *zap.Logger
	onFailure    func(collection string)
}

func NewAggregator(
	ts domain.TripStore,
	ms domain.MaintenanceStore,
	as domain.AppointmentStore,
	rs domain.RestaurantStore,
	ps domain.CommunityPostStore,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		trips:        ts,
		maintenance:  ms,
		appointments: as,
		restaurants:  rs,
		posts:        ps,
		logger:       logger,
	}
}

// SetFailureHook registers fn to be told about each degraded collection.
func (a *Aggregator) SetFailureHook(fn func(collection string)) {
	a.onFailure = fn
}

func (a *Aggregator) ListTrips(ctx context.Context, profileID uuid.UUID) ([]domain.Trip, error) {
	return a.trips.ListByProfile(ctx, profileID)
}

func (a *Aggregator) ListMaintenance(ctx context.Context, profileID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	return a.maintenance.ListByProfile(ctx, profileID)
}

func (a *Aggregator) ListAppointments(ctx context.Context, profileID uuid.UUID) ([]domain.Appointment, error) {
	return a.appointments.ListByProfile(ctx, profileID)
}

func (a *Aggregator) ListRestaurants(ctx context.Context, tenantID uuid.UUID) ([]domain.RestaurantEntry, error) {
	return a.restaurants.ListByTenant(ctx, tenantID)
}

func (a *Aggregator) ListPosts(ctx context.Context, tenantID uuid.UUID) ([]domain.CommunityPost, error) {
	posts, err := a.posts.ListRecentByTenant(ctx, tenantID, CommunityPostLimit)
	if err != nil {
		return nil, err
	}
	if len(posts) > CommunityPostLimit {
		posts = posts[:CommunityPostLimit]
	}
	return posts, nil
}

// LoadAll fetches the five collections concurrently. A failed fetch
// degrades that collection to empty with Failed set; LoadAll itself
// never fails.
func (a *Aggregator) LoadAll(ctx context.Context, profileID, tenantID uuid.UUID) domain.Dashboard {
	var d domain.Dashboard
	var g errgroup.Group

	g.Go(func() error {
		d.Trips = collect(ctx, a, domain.CollectionTrips, func(ctx context.Context) ([]domain.Trip, error) {
			return a.ListTrips(ctx, profileID)
		})
		return nil
	})
	g.Go(func() error {
		d.Maintenance = collect(ctx, a, domain.CollectionMaintenance, func(ctx context.Context) ([]domain.MaintenanceRecord, error) {
			return a.ListMaintenance(ctx, profileID)
		})
		return nil
	})
	g.Go(func() error {
		d.Restaurants = collect(ctx, a, domain.CollectionRestaurants, func(ctx context.Context) ([]domain.RestaurantEntry, error) {
			return a.ListRestaurants(ctx, tenantID)
		})
		return nil
	})
	g.Go(func() error {
		d.Posts = collect(ctx, a, domain.CollectionPosts, func(ctx context.Context) ([]domain.CommunityPost, error) {
			return a.ListPosts(ctx, tenantID)
		})
		return nil
	})
	g.Go(func() error {
		d.Appointments = collect(ctx, a, domain.CollectionAppointments, func(ctx context.Context) ([]domain.Appointment, error) {
			return a.ListAppointments(ctx, profileID)
		})
		return nil
	})

	_ = g.Wait()
	return d
}

func collect[T any](ctx context.Context, a *Aggregator, name string, fetch func(context.Context) ([]T, error)) domain.Collection[T] {
	items, err := fetch(ctx)
	if err != nil {
		a.logger.Warn("collection fetch failed, serving empty",
			zap.String("collection", name),
			zap.Error(err),
		)
		if a.onFailure != nil {
			a.onFailure(name)
		}
		return domain.Collection[T]{Items: []T{}, Failed: true}
	}
	if items == nil {
		items = []T{}
	}
	return domain.Collection[T]{Items: items}
}
