package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/rest/request"
	"github.com/Guyuepp/go-social-feed/internal/rest/response"
)

// UserHandler serves registration, profile lookup and the follow/block toggles
type UserHandler struct {
	Service      domain.UserUsecase
	Relationship domain.RelationshipUsecase
}

func NewUserHandler(svc domain.UserUsecase, rel domain.RelationshipUsecase) *UserHandler {
	return &UserHandler{
		Service:      svc,
		Relationship: rel,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	u, err := h.Service.Register(c.Request.Context(), req.Username, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewUserFromDomain(&u))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUserFromDomain(&u))
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.Service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewUserFromDomain(&u))
}

// Follow toggles the follow edge from the caller to :id
func (h *UserHandler) Follow(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	res, err := h.Relationship.Follow(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followed": res.Followed})
}

// Block toggles :id in the caller's block set
func (h *UserHandler) Block(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	res, err := h.Relationship.Block(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": res.Blocked, "message": res.Message})
}
