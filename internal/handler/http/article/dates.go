package article

import (
	"net/http"

	"daily-wisdom/internal/handler/http/respond"
	"daily-wisdom/internal/repository"
)

// DatesHandler lists every date with a generated base article, newest first.
type DatesHandler struct {
	Repo repository.ArticleRepository
}

// datesResponse is the JSON payload for the available dates listing.
type datesResponse struct {
	Dates []string `json:"dates"`
}

func (h DatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dates, err := h.Repo.ListAvailableDates(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	respond.JSON(w, http.StatusOK, datesResponse{Dates: dates})
}
