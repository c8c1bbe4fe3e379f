package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/rest/request"
	"github.com/Guyuepp/go-social-feed/internal/rest/response"
)

// PostHandler represent the httphandler for posts, replies and likes
type PostHandler struct {
	Service    domain.PostUsecase
	Engagement domain.EngagementUsecase
}

func NewPostHandler(svc domain.PostUsecase, eng domain.EngagementUsecase) *PostHandler {
	return &PostHandler{
		Service:    svc,
		Engagement: eng,
	}
}

func (h *PostHandler) GetByID(c *gin.Context) {
	p, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPostFromDomain(&p))
}

func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	uid, ok := actorID(c)
	if !ok {
		return
	}

	p, err := h.Service.Create(c.Request.Context(), uid, req.Text, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewPostFromDomain(&p))
}

// Reply creates a reply under :id
func (h *PostHandler) Reply(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	uid, ok := actorID(c)
	if !ok {
		return
	}

	p, err := h.Service.AddReply(c.Request.Context(), c.Param("id"), uid, req.Text, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": response.NewPostFromDomain(&p)})
}

// Like toggles the caller's like on :id
func (h *PostHandler) Like(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	res, err := h.Engagement.ToggleLike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Like{Liked: res.Liked, Post: response.NewPostFromDomain(&res.Post)})
}

// Delete removes :id and all replies beneath it
func (h *PostHandler) Delete(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteCascade(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
