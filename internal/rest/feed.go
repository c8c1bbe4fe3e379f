package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/rest/response"
)

// FeedHandler serves the post listings: timelines and profile tabs
type FeedHandler struct {
	Service domain.FeedUsecase
}

func NewFeedHandler(svc domain.FeedUsecase) *FeedHandler {
	return &FeedHandler{Service: svc}
}

type listFunc func(ctx context.Context, id, cursor string, num int64) ([]domain.Post, string, error)

// Timeline lists root posts visible to the caller
func (h *FeedHandler) Timeline(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	h.list(c, uid, h.Service.Timeline)
}

// Following lists posts by the users the caller follows
func (h *FeedHandler) Following(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	h.list(c, uid, h.Service.Following)
}

func (h *FeedHandler) UserPosts(c *gin.Context) {
	h.list(c, c.Param("id"), h.Service.FetchByAuthor)
}

func (h *FeedHandler) UserLikes(c *gin.Context) {
	h.list(c, c.Param("id"), h.Service.FetchLikedBy)
}

func (h *FeedHandler) list(c *gin.Context, id string, fetch listFunc) {
	// the usecase clamps out of range values
	num, _ := strconv.ParseInt(c.Query("num"), 10, 64)

	list, nextCursor, err := fetch(c.Request.Context(), id, c.Query("cursor"), num)
	if err != nil {
		respondError(c, err)
		return
	}
	res := make([]response.Post, len(list))
	for i := range list {
		res[i] = response.NewPostFromDomain(&list[i])
	}
	c.Header("X-Cursor", nextCursor)
	c.JSON(http.StatusOK, res)
}
