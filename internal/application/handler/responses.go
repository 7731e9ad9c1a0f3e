package handler

import (
	"gatehouse/internal/application/models"
)

// Applications are serialized directly; the model's JSON tags are the wire
// contract. Listings wrap the slice so a count and future paging fields have
// somewhere to live.
type listResponse struct {
	Applications []models.Application `json:"applications"`
	Count        int                  `json:"count"`
}

func newListResponse(apps []models.Application) listResponse {
	if apps == nil {
		apps = []models.Application{}
	}
	return listResponse{Applications: apps, Count: len(apps)}
}
