package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

type GetPendingItemsQueryHandler struct {
	reader ports.StateReader
}

func NewGetPendingItemsQueryHandler(reader ports.StateReader) GetPendingItemsQueryHandler {
	return GetPendingItemsQueryHandler{reader: reader}
}

// Handle lists queued items head first.
func (h GetPendingItemsQueryHandler) Handle(ctx context.Context, query GetPendingItemsQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	out := make([]ItemView, 0)
	err := h.reader.Read(ctx, func(view ports.StateView) error {
		for _, it := range view.Pending() {
			out = append(out, newItemView(it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
