package http

import (
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/feed"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
)

type FeedHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type FeedHandlerImpl struct {
	feedService feed.FeedService
}

// Get implements FeedHandler.
func (h *FeedHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 50)

	result, err := h.feedService.GetFeed(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewFeedHandler(feedService feed.FeedService) FeedHandler {
	return &FeedHandlerImpl{
		feedService: feedService,
	}
}
