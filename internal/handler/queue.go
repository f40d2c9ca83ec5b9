package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/middleware"
	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/repository"
)

// QueueHandler serves the customer's queue page.
type QueueHandler struct {
	Queue *repository.QueueRepo
}

// QueuePage lists everything the logged-in customer has queued, joined
// with the contact fields the page displays. Anonymous sessions get an
// empty queue, not an error.
func (h *QueueHandler) QueuePage(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{
			"pageTitle":    "Queue",
			"currentQueue": []model.QueueRow{},
		})
	}
	rows, err := h.Queue.ListForCustomer(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle":    "Queue",
		"currentQueue": emptySlice(rows),
	})
}
