package handler

import (
	"log/slog"
	"net/http"
	"time"

	"clipstream/internal/delivery/http/middleware"
	"clipstream/internal/delivery/http/response"
	"clipstream/internal/domain/entity"
	"clipstream/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VideoHandler holds dependencies for video-related handlers.
type VideoHandler struct {
	uc     usecase.VideoUsecase
	logger *slog.Logger
}

// NewVideoHandler is the constructor for VideoHandler, injected by Fx.
func NewVideoHandler(uc usecase.VideoUsecase, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		uc:     uc,
		logger: logger,
	}
}

type createVideoRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	VideoURL     string `json:"video_url" validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	Duration     int    `json:"duration" validate:"gte=0"`
	ChannelID    uint64 `json:"channel_id" validate:"required"`
	IsPublished  bool   `json:"is_published"`
}

type updateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	IsPublished *bool   `json:"is_published"`
}

type videoView struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     int       `json:"duration"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	IsPublished  bool      `json:"is_published"`
	UploaderID   uint64    `json:"uploader_id"`
	ChannelID    uint64    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func newVideoView(video *entity.Video) *videoView {
	return &videoView{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		IsPublished:  video.IsPublished,
		UploaderID:   video.UploaderID,
		ChannelID:    video.ChannelID,
		CreatedAt:    video.CreatedAt,
	}
}

func newVideoViews(videos []*entity.Video) []*videoView {
	views := make([]*videoView, 0, len(videos))
	for _, video := range videos {
		views = append(views, newVideoView(video))
	}

	return views
}

// Create registers new video metadata under the authenticated uploader.
func (h *VideoHandler) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req createVideoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid video input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Create(c.Request().Context(), &usecase.CreateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		ChannelID:    req.ChannelID,
		UploaderID:   userID,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newVideoView(video), "Video created successfully")
}

// Get returns a single video.
func (h *VideoHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newVideoView(video), "")
}

// List returns published videos, optionally narrowed by channel or uploader.
func (h *VideoHandler) List(c echo.Context) error {
	videos, err := h.uc.List(c.Request().Context(), &usecase.ListVideosInput{
		PublishedOnly: true,
		ChannelID:     queryUint(c, "channel_id"),
		UploaderID:    queryUint(c, "uploader_id"),
		Limit:         queryInt(c, "limit", 20),
		Offset:        queryInt(c, "offset", 0),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newVideoViews(videos), "")
}

// Update modifies a video owned by the authenticated uploader.
func (h *VideoHandler) Update(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateVideoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid video input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Update(c.Request().Context(), &usecase.UpdateVideoInput{
		VideoID:     id,
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newVideoView(video), "Video updated successfully")
}

// Delete removes a video owned by the authenticated uploader.
func (h *VideoHandler) Delete(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), id, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Video deleted"}, "Video deleted successfully")
}

// AddView records a playback view. Views are anonymous.
func (h *VideoHandler) AddView(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.AddView(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "View recorded"}, "")
}

// Like moves the like counter up for the video.
func (h *VideoHandler) Like(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Like(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Like recorded"}, "")
}

// Unlike moves the like counter back down for the video.
func (h *VideoHandler) Unlike(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Unlike(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Like removed"}, "")
}
