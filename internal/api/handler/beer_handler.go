package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beerlist/beerlist/internal/api/metrics"
	"github.com/beerlist/beerlist/internal/core/domain"
	"github.com/beerlist/beerlist/internal/core/ports"
)

// BeerHandler handles HTTP requests for the beer list. Write routes are
// expected to sit behind middleware.RequireSession.
type BeerHandler struct {
	service ports.BeerService
	log     zerolog.Logger
}

func NewBeerHandler(service ports.BeerService, log zerolog.Logger) *BeerHandler {
	return &BeerHandler{service: service, log: log}
}

// List handles GET /beers.
//
// @Summary      List all beers
// @Tags         beers
// @Produce      json
// @Success      200  {array}   beerResponse
// @Failure      500  "store error, empty body"
// @Router       /beers [get]
func (h *BeerHandler) List(c echo.Context) error {
	beers, err := h.service.ListBeers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list beers")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, toBeerListResponse(beers))
}

// Create handles POST /beers.
//
// @Summary      Create a beer
// @Tags         beers
// @Accept       json
// @Produce      json
// @Param        body  body      createBeerRequest  true  "Beer fields; any id is ignored"
// @Success      200   {object}  beerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   "no session, empty body"
// @Failure      500   {object}  errorResponse
// @Router       /beers [post]
func (h *BeerHandler) Create(c echo.Context) error {
	var req createBeerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	beer, err := h.service.CreateBeer(c.Request().Context(), ports.CreateBeerInput{
		Name:     req.Name,
		Style:    req.Style,
		ImageURL: req.ImageURL,
		ABV:      req.ABV.value,
	})
	if err != nil {
		return err
	}

	metrics.BeerMutationsTotal.WithLabelValues("create").Inc()
	h.log.Info().Str("actor", actor(c)).Str("beer_id", beer.ID).Msg("beer created")
	return c.JSON(http.StatusOK, toBeerResponse(beer))
}

// Update handles PUT /beers/:id. Only the name is applied.
//
// @Summary      Rename a beer
// @Tags         beers
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Beer id"
// @Param        body  body      updateBeerRequest  true  "Only name is read"
// @Success      200   {object}  beerResponse
// @Failure      401   "no session, empty body"
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /beers/{id} [put]
func (h *BeerHandler) Update(c echo.Context) error {
	var req updateBeerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	beer, err := h.service.RenameBeer(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrBeerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "beer not found")
		}
		return err
	}

	metrics.BeerMutationsTotal.WithLabelValues("update").Inc()
	h.log.Info().Str("actor", actor(c)).Str("beer_id", beer.ID).Msg("beer renamed")
	return c.JSON(http.StatusOK, toBeerResponse(beer))
}

// Delete handles DELETE /beers/:id. A failed lookup, including an unknown id,
// is reported as a 500 carrying the error.
//
// @Summary      Delete a beer
// @Tags         beers
// @Produce      json
// @Param        id   path  string  true  "Beer id"
// @Success      204  "deleted"
// @Failure      401  "no session, empty body"
// @Failure      500  {object}  errorResponse
// @Router       /beers/{id} [delete]
func (h *BeerHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBeer(c.Request().Context(), c.Param("id")); err != nil {
		h.log.Warn().Err(err).Str("beer_id", c.Param("id")).Msg("delete failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	metrics.BeerMutationsTotal.WithLabelValues("delete").Inc()
	h.log.Info().Str("actor", actor(c)).Str("beer_id", c.Param("id")).Msg("beer deleted")
	return c.NoContent(http.StatusNoContent)
}
