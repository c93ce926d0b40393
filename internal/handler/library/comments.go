package library

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddCommentRequest 添加评论请求，章节号可选
type AddCommentRequest struct {
	Content       string `json:"content"`
	ChapterNumber *int   `json:"chapterNumber"`
}

// AddComment 添加评论
// @Summary      添加评论
// @Tags         书架
// @Accept       json
// @Produce      json
// @Param        bookId   path      string             true  "图书ID"
// @Param        request  body      AddCommentRequest  true  "评论请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/user-books/{bookId}/comments [post]
// @Security     BearerAuth
func (h *Handler) AddComment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Comment content cannot be empty."})
		return
	}

	comment, err := h.libraryService.AddComment(c.Request.Context(), ident.UserID, c.Param("bookId"), req.Content, req.ChapterNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  只能删除自己书架条目里的评论
// @Tags         书架
// @Produce      json
// @Param        bookId     path      string  true  "图书ID"
// @Param        commentId  path      string  true  "评论ID"
// @Success      200        {object}  map[string]interface{}
// @Failure      404        {object}  ErrorResponse
// @Router       /api/v1/user-books/{bookId}/comments/{commentId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteComment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	commentID := c.Param("commentId")
	if err := h.libraryService.DeleteComment(c.Request.Context(), ident.UserID, c.Param("bookId"), commentID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Comment deleted successfully.",
		"deletedCommentId": commentID,
	})
}
