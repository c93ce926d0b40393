package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadProfilePic 上传头像
// @Summary      上传头像
// @Tags         用户
// @Accept       multipart/form-data
// @Produce      json
// @Param        profilePic  formData  file  true  "头像文件"
// @Success      200         {object}  map[string]interface{}
// @Failure      400         {object}  ErrorResponse
// @Router       /api/v1/user/upload-profile [post]
// @Security     BearerAuth
func (h *Handler) UploadProfilePic(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Unable to read uploaded file"})
		return
	}
	defer file.Close()

	updated, url, err := h.userService.UploadProfilePic(c.Request.Context(), ident.UserID, fileHeader.Filename, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Profile picture updated",
		"profilePic": url,
		"user":       updated,
	})
}
