package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/rest/response"
)

type NotificationHandler struct {
	Service domain.NotificationUsecase
}

func NewNotificationHandler(svc domain.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// Fetch lists the caller's notifications newest first
func (h *NotificationHandler) Fetch(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	// the usecase clamps out of range values
	num, _ := strconv.ParseInt(c.Query("num"), 10, 64)

	list, nextCursor, err := h.Service.FetchByOwner(c.Request.Context(), uid, c.Query("cursor"), num)
	if err != nil {
		respondError(c, err)
		return
	}
	res := make([]response.Notification, len(list))
	for i := range list {
		res[i] = response.NewNotificationFromDomain(&list[i])
	}
	c.Header("X-Cursor", nextCursor)
	c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
