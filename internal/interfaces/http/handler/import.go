package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	importapp "github.com/snehagupta9582883065/recent-api/internal/application/import"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/dto"
)

// DefaultMaxImportFileSize is used when no limit is configured (10MB)
const DefaultMaxImportFileSize int64 = 10 << 20

// ImportHandler handles CSV import endpoints
type ImportHandler struct {
	BaseHandler
	categoryImport *importapp.CategoryImportService
	productImport  *importapp.ProductImportService
	maxRows        int
	maxFileSize    int64
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(
	categoryImport *importapp.CategoryImportService,
	productImport *importapp.ProductImportService,
	maxRows int,
	maxFileSize int64,
) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxImportFileSize
	}
	return &ImportHandler{
		categoryImport: categoryImport,
		productImport:  productImport,
		maxRows:        maxRows,
		maxFileSize:    maxFileSize,
	}
}

// importForm is the union of optional multipart fields the preview accepts
type importForm struct {
	dto.CategoryImportForm
	dto.ProductImportForm
}

// Preview handles POST /import/preview?type=categories|products.
// Nothing is written; the response shows the headers and the first mapped rows.
//
// @Summary      Preview a CSV or XLSX import
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        type query string true "categories or products"
// @Param        file formData file true "CSV or XLSX file"
// @Success      200 {object} dto.Response{data=importapp.PreviewResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /import/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	var query dto.ImportPreviewQuery
	if !h.BindQuery(c, &query) {
		return
	}
	kind, err := importapp.ParseImportType(query.Type)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var form importForm
	if !h.BindForm(c, &form) {
		return
	}
	mapping, ok := h.parseMapping(c, form.ColumnMapping)
	if !ok {
		return
	}

	data, _, ok := h.readUpload(c, "file", h.maxFileSize)
	if !ok {
		return
	}

	result, err := importapp.Preview(data, kind, form.CategoryColumn, mapping, h.maxRows)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportCategories handles POST /import/categories
//
// @Summary      Import categories from CSV or XLSX
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX file"
// @Param        category_column formData string false "Column holding the category path"
// @Success      200 {object} dto.Response{data=importapp.CategoryImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /import/categories [post]
func (h *ImportHandler) ImportCategories(c *gin.Context) {
	var form dto.CategoryImportForm
	if !h.BindForm(c, &form) {
		return
	}

	data, _, ok := h.readUpload(c, "file", h.maxFileSize)
	if !ok {
		return
	}

	result, err := h.categoryImport.Import(c.Request.Context(), data, form.CategoryColumn)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportProducts handles POST /import/products
//
// @Summary      Import products from CSV or XLSX
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX file"
// @Param        column_mapping formData string false "JSON column mapping"
// @Success      200 {object} dto.Response{data=importapp.ProductImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /import/products [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	var form dto.ProductImportForm
	if !h.BindForm(c, &form) {
		return
	}
	mapping, ok := h.parseMapping(c, form.ColumnMapping)
	if !ok {
		return
	}

	data, _, ok := h.readUpload(c, "file", h.maxFileSize)
	if !ok {
		return
	}

	result, err := h.productImport.Import(c.Request.Context(), data, mapping)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// parseMapping decodes the column_mapping JSON field; empty means the default sheet layout
func (h *ImportHandler) parseMapping(c *gin.Context, raw string) (importapp.ColumnMapping, bool) {
	var mapping importapp.ColumnMapping
	if raw == "" {
		return mapping, true
	}
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "column_mapping must be a JSON object")
		return mapping, false
	}
	return mapping, true
}
