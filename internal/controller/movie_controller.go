package controller

import (
	"net/http"

	"github.com/cassiomorais/movierental/internal/service"
)

// MovieController handles catalog HTTP requests.
type MovieController struct {
	movieService *service.MovieService
}

// NewMovieController creates a new MovieController.
func NewMovieController(movieService *service.MovieService) *MovieController {
	return &MovieController{movieService: movieService}
}

// Create handles POST /api/v1/movies
func (h *MovieController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovieRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	m, err := h.movieService.Add(r.Context(), service.AddMovieRequest{
		Title:            req.Title,
		Description:      req.Description,
		Stock:            req.Stock,
		RentalPriceCents: floatToCents(req.RentalPrice),
		SalePriceCents:   floatToCents(req.SalePrice),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromMovie(m))
}

// Get handles GET /api/v1/movies/{id}
func (h *MovieController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "movie")
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := h.movieService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromMovie(m))
}

// List handles GET /api/v1/movies
func (h *MovieController) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, FromMovie(m))
	}
	writeJSON(w, http.StatusOK, resp)
}
