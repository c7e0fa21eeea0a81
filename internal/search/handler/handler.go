package handler

import (
	"net/http"

	"records_portal_backend/internal/search/service"
	"records_portal_backend/internal/search/transport"
	"records_portal_backend/platform/httpkit"
	"records_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.SearchByQuery)
	rg.POST("", h.Search)
	rg.POST("/more", h.LoadMore)
	rg.GET("/filters", h.AvailableFilters)
}

func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	h.search(c, req)
}

func (h *Handler) SearchByQuery(c *gin.Context) {
	var params transport.SearchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	h.search(c, params.ToSearchRequest())
}

func (h *Handler) search(c *gin.Context, req transport.SearchRequest) {
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, transport.ValidationError(err))
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Search(c.Request.Context(), identity, req.ToDomain())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromDomain(result))
}

func (h *Handler) LoadMore(c *gin.Context) {
	var req transport.LoadMoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, transport.ValidationError(err))
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.LoadMore(c.Request.Context(), identity, req.Request.ToDomain(), *req.Offset)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromDomain(result))
}

func (h *Handler) AvailableFilters(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	catalog, err := h.svc.AvailableFilters(c.Request.Context(), identity)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CatalogFromDomain(catalog))
}
