package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

type FindEligibleDriversQueryHandler struct {
	reader ports.StateReader
}

func NewFindEligibleDriversQueryHandler(reader ports.StateReader) FindEligibleDriversQueryHandler {
	return FindEligibleDriversQueryHandler{reader: reader}
}

// Handle returns driver ids in ascending order. It changes nothing.
func (h FindEligibleDriversQueryHandler) Handle(
	ctx context.Context,
	query FindEligibleDriversQuery,
) ([]kernel.DriverID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	out := make([]kernel.DriverID, 0)
	err := h.reader.Read(ctx, func(view ports.StateView) error {
		for _, d := range services.EligibleDrivers(query.Size(), view.Drivers()) {
			out = append(out, d.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
