package handler

import (
	"log/slog"
	"net/http"
	"time"

	"clipstream/internal/delivery/http/middleware"
	"clipstream/internal/delivery/http/response"
	"clipstream/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecommendationHandler holds dependencies for recommendation-related handlers.
type RecommendationHandler struct {
	uc     usecase.RecommendationUsecase
	logger *slog.Logger
}

// NewRecommendationHandler is the constructor for RecommendationHandler, injected by Fx.
func NewRecommendationHandler(uc usecase.RecommendationUsecase, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		uc:     uc,
		logger: logger,
	}
}

type recordRecommendationRequest struct {
	VideoID uint64  `json:"video_id" validate:"required"`
	Score   float64 `json:"score" validate:"gte=0,lte=1"`
	Reason  string  `json:"reason" validate:"max=100"`
	Details string  `json:"details" validate:"max=1000"`
}

type recommendedVideoView struct {
	Video     *videoView `json:"video"`
	Score     float64    `json:"score"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// List returns the authenticated user's recommendation feed.
func (h *RecommendationHandler) List(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	rows, err := h.uc.ListForUser(c.Request().Context(), userID, queryInt(c, "limit", 20))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*recommendedVideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &recommendedVideoView{
			Video:     newVideoView(row.Video),
			Score:     row.Recommendation.Score,
			Reason:    row.Recommendation.Reason,
			CreatedAt: row.Recommendation.CreatedAt,
		})
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Record stores a recommendation for the authenticated user.
func (h *RecommendationHandler) Record(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req recordRecommendationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recommendation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	rec, err := h.uc.Record(c.Request().Context(), &usecase.RecordRecommendationInput{
		UserID:  userID,
		VideoID: req.VideoID,
		Score:   req.Score,
		Reason:  req.Reason,
		Details: req.Details,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]uint64{"id": rec.ID}, "Recommendation recorded")
}
