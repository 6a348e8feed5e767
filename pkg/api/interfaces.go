package api

import "github.com/mfreeman451/camrelay/pkg/models"

//go:generate mockgen -destination=mock_api.go -package=api github.com/mfreeman451/camrelay/pkg/api StatusProvider

// StatusProvider exposes relay state to the API.
type StatusProvider interface {
	Status() models.RelayStatus
	Sessions() []models.SessionRecord
	LatestSession() *models.SessionRecord
}
