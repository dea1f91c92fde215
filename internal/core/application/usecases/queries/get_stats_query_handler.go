package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

// Stats summarises the scheduling state for external reporting.
type Stats struct {
	Drivers        int
	ActiveDrivers  int
	BusyDrivers    int
	Routes         int
	RoutesByStatus map[route.Status]int
	QueuedItems    int
	AssignedItems  int

	// ActiveEarnings sums the earnings of routes that are not terminal.
	ActiveEarnings kernel.Money
}

type GetStatsQueryHandler struct {
	reader ports.StateReader
}

func NewGetStatsQueryHandler(reader ports.StateReader) GetStatsQueryHandler {
	return GetStatsQueryHandler{reader: reader}
}

func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (Stats, error) {
	if err := query.Validate(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		RoutesByStatus: make(map[route.Status]int, len(route.Statuses())),
		ActiveEarnings: kernel.Zero(),
	}
	for _, s := range route.Statuses() {
		stats.RoutesByStatus[s] = 0
	}

	err := h.reader.Read(ctx, func(view ports.StateView) error {
		for _, d := range view.Drivers() {
			stats.Drivers++
			if d.IsActive() {
				stats.ActiveDrivers++
			}
			if d.CurrentRouteID() != nil {
				stats.BusyDrivers++
			}
		}
		for _, r := range view.Routes() {
			stats.Routes++
			stats.RoutesByStatus[r.Status()]++
			if r.IsActive() {
				stats.AssignedItems += r.Len()
				stats.ActiveEarnings = stats.ActiveEarnings.Add(r.TotalEarnings())
			}
		}
		stats.QueuedItems = len(view.Pending())
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}
