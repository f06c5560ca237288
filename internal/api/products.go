package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/store"
)

type productPayload struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Description string   `json:"description"`
}

func (p productPayload) product(id int64) product.Product {
	return product.Product{
		ID:          id,
		Name:        strings.TrimSpace(p.Name),
		Image:       strings.TrimSpace(p.Image),
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		Description: p.Description,
	}.Normalize()
}

// listProducts returns all products, or searches when ?name= or ?color= is set.
func (s *Server) listProducts(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.QueryParam("name")
	color := c.QueryParam("color")

	var (
		rows []product.Product
		err  error
	)
	switch {
	case name != "" && color != "":
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Search by name or by color, not both", nil)
	case name != "":
		rows, err = s.catalog.SearchByName(ctx, name)
	case color != "":
		rows, err = s.catalog.SearchByColor(ctx, color)
	default:
		rows, err = s.catalog.List(ctx)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeDatabaseError, "Failed to query products", nil)
	}
	return ok(c, rows)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidID, "Invalid product ID", nil)
	}
	p, err := s.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return s.lookupFailed(c, err)
	}
	return ok(c, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Unable to parse product", err.Error())
	}
	p := payload.product(0)
	if err := p.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Name is required", nil)
	}

	id, err := s.catalog.Insert(c.Request().Context(), p)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeDatabaseError, "Failed to create product", nil)
	}
	p.ID = id
	return ok(c, p)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidID, "Invalid product ID", nil)
	}
	ctx := c.Request().Context()
	if _, err := s.catalog.Get(ctx, id); err != nil {
		return s.lookupFailed(c, err)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Unable to parse product", err.Error())
	}
	p := payload.product(id)
	if err := p.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Name is required", nil)
	}

	if err := s.catalog.Update(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, CodeDatabaseError, "Failed to update product", nil)
	}
	return ok(c, p)
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidID, "Invalid product ID", nil)
	}
	if err := s.catalog.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, CodeDatabaseError, "Failed to delete product", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func (s *Server) lookupFailed(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, CodeNotFound, "Product not found", nil)
	}
	return fail(c, http.StatusInternalServerError, CodeDatabaseError, "Failed to query product", nil)
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
