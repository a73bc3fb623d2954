package article

import (
	"net/http"

	"daily-wisdom/internal/repository"
)

// Register registers the article read endpoints with the given mux.
func Register(mux *http.ServeMux, repo repository.ArticleRepository, ensure Ensurer, translator Translator) {
	get := GetHandler{Repo: repo, Ensure: ensure, Translator: translator}

	mux.Handle("GET /articles/{date}", get)
	mux.Handle("GET /articles/{date}/{language}", get)
	mux.Handle("GET /available-dates", DatesHandler{Repo: repo})
}
