package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/middleware"
	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/queue"
	"github.com/streamtv/streamtv/internal/repository"
	event_publisher "github.com/streamtv/streamtv/internal/service"
	"github.com/streamtv/streamtv/internal/utils"
)

// WatchedHandler serves the watched list and the watch-episode action.
type WatchedHandler struct {
	Watched   *repository.WatchedRepo
	Episodes  *repository.EpisodeRepo
	Shows     *repository.ShowRepo
	Customers *repository.CustomerRepo
	// PublishEvents enables the episode.watched broker pipeline; off in
	// tests and when no broker is configured.
	PublishEvents bool
}

// WatchedPage lists the episodes of one show the logged-in customer has
// watched, with a small customer/show header. Anonymous sessions get
// empty results.
func (h *WatchedHandler) WatchedPage(c echo.Context) error {
	ctx := c.Request().Context()
	showID := c.Param("showID")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{
			"pageTitle":   "Watched",
			"custInfo":    echo.Map{},
			"watchedList": []model.WatchedRow{},
		})
	}

	cust, err := h.Customers.GetByUsername(ctx, user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	show, err := h.Shows.GetByID(ctx, showID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rows, err := h.Watched.ListForShow(ctx, user, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle":   "Watched",
		"custInfo":    echo.Map{"fname": cust.Fname, "lname": cust.Lname, "title": show.Title},
		"watchedList": emptySlice(rows),
	})
}

// WatchEpisode records that the logged-in customer watched the episode
// today. First watch inserts a row; a repeat on the same calendar day is
// refused (can_watch=false, row untouched); a repeat on a later day moves
// the row's date forward. Anonymous requests get the episode info with no
// side effect.
func (h *WatchedHandler) WatchEpisode(c echo.Context) error {
	ctx := c.Request().Context()
	showID := c.Param("showID")
	episodeID := c.Param("episodeID")

	detail, err := h.Episodes.GetByID(ctx, showID, episodeID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "episode not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	canWatch := true
	user, ok := middleware.CurrentUser(c)
	if ok {
		cust, err := h.Customers.GetByUsername(ctx, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		outcome, err := h.Watched.Watch(ctx, cust.CustID, showID, episodeID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if outcome == repository.WatchAlreadyToday {
			canWatch = false
		} else if h.PublishEvents {
			h.publishWatched(cust.CustID, user, detail, outcome == repository.WatchRecordedRewatch)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle":   "Watched",
		"episodeInfo": detail,
		"canWatch":    canWatch,
	})
}

// publishWatched emits the episode.watched event on a short background
// deadline; a broker outage must not fail the watch action.
func (h *WatchedHandler) publishWatched(custID, username string, detail model.EpisodeDetail, rewatch bool) {
	now := time.Now()
	ev := queue.EpisodeWatchedEvent{
		CustID:       custID,
		Username:     username,
		ShowID:       detail.ShowID,
		ShowTitle:    detail.ShowTitle,
		EpisodeID:    detail.EpisodeID,
		EpisodeTitle: detail.EpisodeTitle,
		DateWatched:  utils.ServiceDate(now),
		Rewatch:      rewatch,
		RecordedAt:   now.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := event_publisher.PublishEpisodeWatched(ctx, ev); err != nil {
			log.Printf("watch_episode: publish event failed: %v", err)
		}
	}()
}
