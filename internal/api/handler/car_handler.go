package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/forms"
)

const defaultPopularLimit = 6

// CarHandler serves the catalogue and its admin CRUD.
type CarHandler struct {
	inventory ports.InventoryService
}

func NewCarHandler(inventory ports.InventoryService) *CarHandler {
	return &CarHandler{inventory: inventory}
}

// List handles GET /v1/cars.
//
// @Summary      Search cars
// @Tags         cars
// @Produce      json
// @Param        search           query     string  false  "Substring of name, brand or model"
// @Param        category         query     string  false  "Category or all"
// @Param        brand            query     string  false  "Brand or all"
// @Param        transmission     query     string  false  "Transmission or all"
// @Param        fuelType         query     string  false  "Fuel type or all"
// @Param        minPrice         query     number  false  "Minimum price per day"
// @Param        maxPrice         query     number  false  "Maximum price per day"
// @Param        seatingCapacity  query     int     false  "Minimum seats"
// @Param        sort             query     string  false  "price-asc, price-desc, rating or newest"
// @Success      200              {object}  carListResponse
// @Failure      400              {object}  errorResponse
// @Router       /v1/cars [get]
func (h *CarHandler) List(c echo.Context) error {
	var q carSearchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	filters, err := q.filters()
	if err != nil {
		return err
	}

	cars, err := h.inventory.Search(c.Request().Context(), filters, domain.SortOption(q.Sort))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carListResponse{Cars: cars, Count: len(cars)})
}

// Popular handles GET /v1/cars/popular.
//
// @Summary      Popular available cars
// @Tags         cars
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of cars (default 6)"
// @Success      200    {object}  carListResponse
// @Router       /v1/cars/popular [get]
func (h *CarHandler) Popular(c echo.Context) error {
	limit := defaultPopularLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	cars, err := h.inventory.Popular(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carListResponse{Cars: cars, Count: len(cars)})
}

// Brands handles GET /v1/cars/brands.
//
// @Summary      Distinct brands
// @Tags         cars
// @Produce      json
// @Success      200  {object}  brandsResponse
// @Router       /v1/cars/brands [get]
func (h *CarHandler) Brands(c echo.Context) error {
	brands, err := h.inventory.Brands(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brandsResponse{Brands: brands})
}

// Get handles GET /v1/cars/:id.
//
// @Summary      Get a car
// @Tags         cars
// @Produce      json
// @Param        id   path      string  true  "Car id"
// @Success      200  {object}  domain.Car
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [get]
func (h *CarHandler) Get(c echo.Context) error {
	car, err := h.inventory.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, car)
}

// Create handles POST /v1/cars.
//
// @Summary      Add a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      forms.CarForm  true  "Car attributes"
// @Success      201   {object}  domain.Car
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	var req forms.CarForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	car, err := h.inventory.Create(c.Request().Context(), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, car)
}

// Update handles PATCH /v1/cars/:id.
//
// @Summary      Update a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Car id"
// @Param        body  body      domain.CarPatch  true  "Fields to change"
// @Success      200   {object}  domain.Car
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cars/{id} [patch]
func (h *CarHandler) Update(c echo.Context) error {
	var patch domain.CarPatch
	if err := (&echo.DefaultBinder{}).BindBody(c, &patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&patch); err != nil {
		return err
	}

	car, err := h.inventory.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, car)
}

// Delete handles DELETE /v1/cars/:id. Bookings of the car are kept.
//
// @Summary      Delete a car
// @Tags         cars
// @Security     BearerAuth
// @Param        id   path  string  true  "Car id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	if err := h.inventory.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
