package book

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadCover 上传封面
// @Summary      上传封面
// @Description  multipart表单，字段名bookCover
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Param        bookId     path      string  true  "图书ID"
// @Param        bookCover  formData  file    true  "封面图片"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /api/v1/books/{bookId}/cover [post]
// @Security     BearerAuth
func (h *Handler) UploadCover(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("bookCover")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No cover image file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No cover image file uploaded."})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	b, err := h.bookService.UploadCover(c.Request.Context(), ident, c.Param("bookId"), fileHeader.Filename, file, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Book cover uploaded successfully.",
		"book":    b,
	})
}
