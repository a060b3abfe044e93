package handler

import (
	"github.com/gin-gonic/gin"
	marketingapp "github.com/snehagupta9582883065/recent-api/internal/application/marketing"
)

// BannerHandler handles homepage banner endpoints
type BannerHandler struct {
	BaseHandler
	bannerService *marketingapp.BannerService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService *marketingapp.BannerService) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
	}
}

// ListLive handles GET /banners/public: active banners inside their schedule, in display order
//
// @Summary      List live banners
// @Tags         banners
// @Produce      json
// @Success      200 {object} dto.Response{data=[]marketingapp.BannerResponse}
// @Router       /banners/public [get]
func (h *BannerHandler) ListLive(c *gin.Context) {
	banners, err := h.bannerService.ListLive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banners)
}

// List handles GET /banners
//
// @Summary      List banners
// @Tags         banners
// @Produce      json
// @Param        filter query marketingapp.BannerListFilter false "Filters and paging"
// @Success      200 {object} dto.Response{data=[]marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners [get]
func (h *BannerHandler) List(c *gin.Context) {
	var filter marketingapp.BannerListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	banners, total, err := h.bannerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, banners, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /banners/:id
//
// @Summary      Get a banner
// @Tags         banners
// @Produce      json
// @Param        id path string true "Banner ID"
// @Success      200 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/{id} [get]
func (h *BannerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	banner, err := h.bannerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banner)
}

// Create handles POST /banners
//
// @Summary      Create a banner
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        request body marketingapp.CreateBannerRequest true "Banner"
// @Success      201 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var req marketingapp.CreateBannerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, banner)
}

// Update handles PUT /banners/:id
//
// @Summary      Update a banner
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        id path string true "Banner ID"
// @Param        request body marketingapp.UpdateBannerRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=marketingapp.BannerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/{id} [put]
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req marketingapp.UpdateBannerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	banner, err := h.bannerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banner)
}

// Delete handles DELETE /banners/:id
//
// @Summary      Delete a banner
// @Tags         banners
// @Produce      json
// @Param        id path string true "Banner ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reorder handles PUT /banners/reorder
//
// @Summary      Reorder banners
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        request body marketingapp.ReorderBannersRequest true "Banner IDs in display order"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/reorder [put]
func (h *BannerHandler) Reorder(c *gin.Context) {
	var req marketingapp.ReorderBannersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.bannerService.Reorder(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"reordered": len(req.IDs)})
}

// Stats handles GET /banners/stats
//
// @Summary      Banner counts
// @Tags         banners
// @Produce      json
// @Success      200 {object} dto.Response{data=marketing.BannerStats}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /banners/stats [get]
func (h *BannerHandler) Stats(c *gin.Context) {
	stats, err := h.bannerService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
