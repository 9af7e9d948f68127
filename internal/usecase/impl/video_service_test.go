package impl

import (
	"context"
	"testing"

	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoServiceFixtures struct {
	txManager *fakeTxManager
	service   usecase.VideoUsecase
}

func newVideoServiceFixtures() *videoServiceFixtures {
	txManager := newFakeTxManager()

	return &videoServiceFixtures{
		txManager: txManager,
		service: NewVideoService(VideoServiceParams{
			TxManager: txManager,
			Logger:    newDiscardLogger(),
		}),
	}
}

func (f *videoServiceFixtures) seedChannel(ownerID uint64) *entity.Channel {
	channel := &entity.Channel{Name: "Test Channel", OwnerID: ownerID}
	_ = f.txManager.factory.channelRepo.Create(context.Background(), channel)

	return channel
}

func (f *videoServiceFixtures) seedVideo(uploaderID, channelID uint64, published bool) *entity.Video {
	video := &entity.Video{
		Title:       "Seeded",
		VideoURL:    "https://cdn.example.com/v.mp4",
		IsPublished: published,
		UploaderID:  uploaderID,
		ChannelID:   channelID,
	}
	_ = f.txManager.factory.videoRepo.Create(context.Background(), video)

	return video
}

func TestVideoService_Create(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()
	channel := fixtures.seedChannel(1)

	created, err := fixtures.service.Create(context.Background(), &usecase.CreateVideoInput{
		Title:       "First Upload",
		Description: "hello",
		VideoURL:    "https://cdn.example.com/first.mp4",
		Duration:    120,
		IsPublished: true,
		UploaderID:  1,
		ChannelID:   channel.ID,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "First Upload", created.Title)
	assert.Zero(t, created.ViewCount)
	assert.Zero(t, created.LikeCount)
}

func TestVideoService_Create_MissingChannel(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()

	_, err := fixtures.service.Create(context.Background(), &usecase.CreateVideoInput{
		Title:      "Orphan",
		VideoURL:   "https://cdn.example.com/orphan.mp4",
		UploaderID: 1,
		ChannelID:  42,
	})
	require.ErrorIs(t, err, domainerrors.ErrChannelNotFound)
}

func TestVideoService_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()

	_, err := fixtures.service.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domainerrors.ErrVideoNotFound)
}

func TestVideoService_List_PublishedOnly(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()
	channel := fixtures.seedChannel(1)
	published := fixtures.seedVideo(1, channel.ID, true)
	fixtures.seedVideo(1, channel.ID, false)

	videos, err := fixtures.service.List(context.Background(), &usecase.ListVideosInput{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, published.ID, videos[0].ID)
}

func TestVideoService_Update_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()
	channel := fixtures.seedChannel(1)
	video := fixtures.seedVideo(1, channel.ID, false)

	newTitle := "Renamed"
	published := true

	_, err := fixtures.service.Update(context.Background(), &usecase.UpdateVideoInput{
		VideoID: video.ID,
		ActorID: 2,
		Title:   &newTitle,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := fixtures.service.Update(context.Background(), &usecase.UpdateVideoInput{
		VideoID:     video.ID,
		ActorID:     1,
		Title:       &newTitle,
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsPublished)
}

func TestVideoService_Delete(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()
	channel := fixtures.seedChannel(1)
	video := fixtures.seedVideo(1, channel.ID, true)

	require.ErrorIs(t, fixtures.service.Delete(context.Background(), video.ID, 2), domainerrors.ErrForbidden)
	require.NoError(t, fixtures.service.Delete(context.Background(), video.ID, 1))

	_, err := fixtures.service.GetByID(context.Background(), video.ID)
	require.ErrorIs(t, err, domainerrors.ErrVideoNotFound)
}

func TestVideoService_Counters(t *testing.T) {
	t.Parallel()

	fixtures := newVideoServiceFixtures()
	channel := fixtures.seedChannel(1)
	video := fixtures.seedVideo(1, channel.ID, true)

	require.NoError(t, fixtures.service.AddView(context.Background(), video.ID))
	require.NoError(t, fixtures.service.AddView(context.Background(), video.ID))
	require.NoError(t, fixtures.service.Like(context.Background(), video.ID))

	current, err := fixtures.service.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.ViewCount)
	assert.Equal(t, int64(1), current.LikeCount)

	// The like counter floors at zero.
	require.NoError(t, fixtures.service.Unlike(context.Background(), video.ID))
	require.NoError(t, fixtures.service.Unlike(context.Background(), video.ID))

	current, err = fixtures.service.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Zero(t, current.LikeCount)

	require.ErrorIs(t, fixtures.service.AddView(context.Background(), 999), domainerrors.ErrVideoNotFound)
}
