package handlers

import (
	"net/http"

	"lirivelle/internal/apperr"
	"lirivelle/internal/clientstate"
	"lirivelle/internal/logger"
	"lirivelle/internal/models"
	"lirivelle/internal/services"
	"lirivelle/internal/thread"
	"lirivelle/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// commentView is a comment as this visitor sees it.
type commentView struct {
	models.Comment
	Owned bool `json:"owned"`
}

type nodeView struct {
	Comment  commentView `json:"comment"`
	Children []*nodeView `json:"children"`
}

func viewForest(forest []*thread.Node, state *clientstate.Cache) []*nodeView {
	out := make([]*nodeView, 0, len(forest))
	for _, n := range forest {
		out = append(out, &nodeView{
			Comment:  commentView{Comment: n.Comment, Owned: state.Owns(n.Comment.ID)},
			Children: viewForest(n.Children, state),
		})
	}
	return out
}

type postCommentRequest struct {
	ContentID uint   `json:"contentId"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	ParentID  *uint  `json:"parentId"`
}

type deleteCommentRequest struct {
	Author      string `json:"author"`
	DeleteToken string `json:"deleteToken"`
}

// contentIDParam reads ?contentId=, accepting the older confessionId name.
func contentIDParam(c *gin.Context) (uint, bool) {
	raw := c.Query("contentId")
	if raw == "" {
		raw = c.Query("confessionId")
	}
	return utils.ParseID(raw)
}

// GetThread answers GET /comments?contentId=<id>[&flat=1]
func (h *CommentHandler) GetThread(c *gin.Context) {
	contentID, ok := contentIDParam(c)
	if !ok {
		RespondError(c, apperr.Validation("valid contentId is required"))
		return
	}

	forest, err := h.comments.GetThread(c.Request.Context(), contentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	state := clientstate.FromContext(c)

	if flat := c.Query("flat"); flat == "1" || flat == "true" {
		list := thread.Flatten(forest)
		views := make([]commentView, 0, len(list))
		for _, cm := range list {
			views = append(views, commentView{Comment: cm, Owned: state.Owns(cm.ID)})
		}
		RespondOK(c, http.StatusOK, gin.H{"data": views, "total": len(views)})
		return
	}

	RespondOK(c, http.StatusOK, gin.H{
		"data":  viewForest(forest, state),
		"total": thread.Count(forest),
	})
}

// PostComment answers POST /comments
func (h *CommentHandler) PostComment(c *gin.Context) {
	var req postCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}

	state := clientstate.FromContext(c)
	author := req.Author
	if author == "" {
		author, _ = state.AuthorName()
	}

	res, err := h.comments.PostComment(c.Request.Context(), services.PostCommentInput{
		ContentID: req.ContentID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		Author:    author,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	state.RememberToken(res.Comment.ID, res.DeleteToken)
	if req.Author != "" {
		state.RememberAuthorName(req.Author)
	}
	if err := state.Save(); err != nil {
		logger.WithContext("comments", "post").WithError(err).Warn("Failed to save session")
	}

	RespondOK(c, http.StatusCreated, gin.H{
		"data":        commentView{Comment: *res.Comment, Owned: true},
		"deleteToken": res.DeleteToken,
	})
}

// DeleteComment answers DELETE /comments?commentId=<id>. Credentials come from
// the JSON body, falling back to what the session remembers.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	raw := c.Query("commentId")
	if raw == "" {
		raw = c.Query("id")
	}
	commentID, ok := utils.ParseID(raw)
	if !ok {
		RespondError(c, apperr.Validation("valid commentId is required"))
		return
	}

	var req deleteCommentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		RespondError(c, err)
		return
	}

	state := clientstate.FromContext(c)
	if req.DeleteToken == "" {
		req.DeleteToken, _ = state.LookupToken(commentID)
	}
	if req.Author == "" {
		req.Author, _ = state.AuthorName()
	}

	deleted, err := h.comments.DeleteComment(c.Request.Context(), commentID, req.Author, req.DeleteToken)
	if err != nil {
		RespondError(c, err)
		return
	}

	for _, id := range deleted {
		state.ForgetToken(id)
	}
	if err := state.Save(); err != nil {
		logger.WithContext("comments", "delete").WithError(err).Warn("Failed to save session")
	}

	RespondOK(c, http.StatusOK, gin.H{"deleted": deleted})
}
