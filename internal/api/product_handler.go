package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pankajredekar/productapi/internal/product"
)

type ProductHandler struct {
	service product.Service
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// Register mounts the product routes on g
func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns all products --> GET /
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product or 404 --> GET /:id
func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.NoContent(http.StatusBadRequest)
	}
	return h.respondWithProduct(c, id)
}

// Create inserts a product and answers with the stored row --> POST /
// The response is 200 with the entity, not 201.
func (h *ProductHandler) Create(c echo.Context) error {
	var p product.Product
	if err := bindBody(c, &p); err != nil {
		return c.NoContent(statusOf(err))
	}

	id, err := h.service.Create(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return h.respondWithProduct(c, id)
}

// Update overwrites a product --> PUT /:id
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.NoContent(http.StatusBadRequest)
	}

	var p product.Product
	if err := bindBody(c, &p); err != nil {
		return c.NoContent(statusOf(err))
	}
	if p.ID != id {
		return c.NoContent(http.StatusBadRequest)
	}

	updated, err := h.service.Update(c.Request().Context(), p)
	if err != nil {
		return err
	}
	if !updated {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a product --> DELETE /:id
func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.NoContent(http.StatusBadRequest)
	}

	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) respondWithProduct(c echo.Context, id int64) error {
	p, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if p == nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, p)
}

func pathID(c echo.Context) (int64, bool) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, false
	}
	return id, true
}

// bindBody decodes only the request body; path params never leak into the entity.
func bindBody(c echo.Context, dst interface{}) error {
	return (&echo.DefaultBinder{}).BindBody(c, dst)
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusBadRequest
}
