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

// ChannelHandler holds dependencies for channel-related handlers.
type ChannelHandler struct {
	uc     usecase.ChannelUsecase
	logger *slog.Logger
}

// NewChannelHandler is the constructor for ChannelHandler, injected by Fx.
func NewChannelHandler(uc usecase.ChannelUsecase, logger *slog.Logger) *ChannelHandler {
	return &ChannelHandler{
		uc:     uc,
		logger: logger,
	}
}

type createChannelRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=5000"`
}

type updateChannelRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type channelView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newChannelView(channel *entity.Channel) *channelView {
	return &channelView{
		ID:          channel.ID,
		Name:        channel.Name,
		Description: channel.Description,
		OwnerID:     channel.OwnerID,
		CreatedAt:   channel.CreatedAt,
	}
}

type channelWithVideosView struct {
	Channel *channelView `json:"channel"`
	Videos  []*videoView `json:"videos"`
}

// Create creates a channel owned by the authenticated user.
func (h *ChannelHandler) Create(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	var req createChannelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid channel input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	channel, err := h.uc.Create(c.Request().Context(), &usecase.CreateChannelInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newChannelView(channel), "Channel created successfully")
}

// Get returns a channel together with its published videos.
func (h *ChannelHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &channelWithVideosView{
		Channel: newChannelView(result.Channel),
		Videos:  newVideoViews(result.Videos),
	}, "")
}

// List returns channels.
func (h *ChannelHandler) List(c echo.Context) error {
	channels, err := h.uc.List(c.Request().Context(), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*channelView, 0, len(channels))
	for _, channel := range channels {
		views = append(views, newChannelView(channel))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Update modifies a channel owned by the authenticated user.
func (h *ChannelHandler) Update(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateChannelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid channel input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	channel, err := h.uc.Update(c.Request().Context(), &usecase.UpdateChannelInput{
		ChannelID:   id,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newChannelView(channel), "Channel updated successfully")
}

// Delete removes a channel owned by the authenticated user.
func (h *ChannelHandler) Delete(c echo.Context) error {
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

	return response.Success(c, http.StatusOK, map[string]string{"message": "Channel deleted"}, "Channel deleted successfully")
}
