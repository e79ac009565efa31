package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/api/metrics"
	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// ResourceHandler handles HTTP requests for resource operations.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List returns a page of resources visible to the caller.
//
// @Summary      List resources
// @Description  Users only see resources they own; administrators see all.
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Param        status    query     string  false  "ACTIVE, DRAFT or ARCHIVED"
// @Param        category  query     string  false  "Exact category"
// @Param        page      query     int     false  "1-based page"       default(1)
// @Param        limit     query     int     false  "Page size, max 100" default(20)
// @Success      200       {object}  resourceListResponse
// @Failure      400       {object}  errorBody
// @Failure      401       {object}  errorBody
// @Router       /resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q resourceListQuery
	if err := bind(c, &q, "query"); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), p, ports.ListResourcesInput{
		Search:   q.Search,
		Status:   q.Status,
		Category: q.Category,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResourceListResponse(result))
}

// Get returns a single resource.
//
// @Summary      Get a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  resourceResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /resources/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	resource, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resourceResponse{Resource: resource})
}

// Create stores a new resource owned by the caller.
//
// @Summary      Create a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createResourceRequest  true  "Resource fields"
// @Success      201   {object}  resourceResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createResourceRequest
	if err := bind(c, &req, "body"); err != nil {
		return err
	}

	resource, err := h.service.Create(c.Request().Context(), p, toCreateResourceInput(req))
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues(string(resource.Status)).Inc()
	return c.JSON(http.StatusCreated, resourceResponse{Resource: resource})
}

// Update applies a partial update.
//
// @Summary      Update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Resource id"
// @Param        body  body      updateResourceRequest  true  "Fields to change"
// @Success      200   {object}  resourceResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /resources/{id} [patch]
func (h *ResourceHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateResourceRequest
	if err := bind(c, &req, "body"); err != nil {
		return err
	}

	resource, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toUpdateResourceInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resourceResponse{Resource: resource})
}

// Delete removes a resource.
//
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Resource deleted"})
}

// Categories counts resources per category within the caller's scope.
//
// @Summary      Resource categories
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoriesResponse
// @Failure      401  {object}  errorBody
// @Router       /resources/meta/categories [get]
func (h *ResourceHandler) Categories(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	cats, err := h.service.Categories(c.Request().Context(), p)
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []domain.CategoryCount{}
	}

	return c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}
