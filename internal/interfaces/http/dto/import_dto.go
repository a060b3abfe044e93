package dto

// ImportPreviewQuery selects what an uploaded file is previewed as
type ImportPreviewQuery struct {
	Type string `form:"type" binding:"required,oneof=categories products"`
}

// CategoryImportForm carries the multipart fields of a category import besides the file
type CategoryImportForm struct {
	CategoryColumn string `form:"category_column" binding:"max=100"`
}

// ProductImportForm carries the multipart fields of a product import besides the file.
// ColumnMapping is a JSON object of field name to CSV header.
type ProductImportForm struct {
	ColumnMapping string `form:"column_mapping"`
}

// ImageUploadForm carries the multipart fields of an image upload besides the file
type ImageUploadForm struct {
	Folder string `form:"folder" binding:"omitempty,oneof=categories products banners"`
}
