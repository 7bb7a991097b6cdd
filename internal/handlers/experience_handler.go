package handlers

import (
	"errors"
	"net/http"

	"bookit/internal/services"
	"bookit/internal/status"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type ExperienceHandler struct {
	app         *pocketbase.PocketBase
	experiences *services.ExperienceService
}

func NewExperienceHandler(app *pocketbase.PocketBase, experiences *services.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{
		app:         app,
		experiences: experiences,
	}
}

// List - All bookable experiences
func (h *ExperienceHandler) List(e *core.RequestEvent) error {
	experiences, err := h.experiences.List(e.Request.Context())
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to fetch experiences", err)
	}

	return e.JSON(http.StatusOK, experiences)
}

// Get - One experience with its slots and remaining capacity
func (h *ExperienceHandler) Get(e *core.RequestEvent) error {
	experienceID := e.Request.PathValue("experienceId")
	if experienceID == "" {
		return apis.NewBadRequestError("Experience ID is required", nil)
	}

	experience, err := h.experiences.Get(e.Request.Context(), experienceID)
	if err != nil {
		if errors.Is(err, status.ErrExperienceNotFound) {
			return apis.NewNotFoundError("Experience not found", err)
		}
		return apis.NewApiError(http.StatusInternalServerError, "Failed to fetch experience", err)
	}

	return e.JSON(http.StatusOK, experience)
}
