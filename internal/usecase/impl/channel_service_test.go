package impl

import (
	"context"
	"testing"

	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelServiceFixtures struct {
	txManager *fakeTxManager
	service   usecase.ChannelUsecase
}

func newChannelServiceFixtures() *channelServiceFixtures {
	txManager := newFakeTxManager()

	return &channelServiceFixtures{
		txManager: txManager,
		service: NewChannelService(ChannelServiceParams{
			TxManager: txManager,
			Logger:    newDiscardLogger(),
		}),
	}
}

func TestChannelService_CreateAndGet(t *testing.T) {
	t.Parallel()

	fixtures := newChannelServiceFixtures()

	created, err := fixtures.service.Create(context.Background(), &usecase.CreateChannelInput{
		Name:        "Cooking",
		Description: "Weeknight recipes",
		OwnerID:     1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	videoRepo := fixtures.txManager.factory.videoRepo
	_ = videoRepo.Create(context.Background(), seedVideoEntity(1, created.ID, true))
	_ = videoRepo.Create(context.Background(), seedVideoEntity(1, created.ID, false))

	result, err := fixtures.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cooking", result.Channel.Name)
	// Drafts stay out of the channel page.
	require.Len(t, result.Videos, 1)
	assert.True(t, result.Videos[0].IsPublished)
}

func TestChannelService_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	fixtures := newChannelServiceFixtures()

	_, err := fixtures.service.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domainerrors.ErrChannelNotFound)
}

func TestChannelService_Update_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	fixtures := newChannelServiceFixtures()
	created, err := fixtures.service.Create(context.Background(), &usecase.CreateChannelInput{
		Name:    "Original",
		OwnerID: 1,
	})
	require.NoError(t, err)

	newName := "Renamed"

	_, err = fixtures.service.Update(context.Background(), &usecase.UpdateChannelInput{
		ChannelID: created.ID,
		ActorID:   2,
		Name:      &newName,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := fixtures.service.Update(context.Background(), &usecase.UpdateChannelInput{
		ChannelID: created.ID,
		ActorID:   1,
		Name:      &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestChannelService_Delete(t *testing.T) {
	t.Parallel()

	fixtures := newChannelServiceFixtures()
	created, err := fixtures.service.Create(context.Background(), &usecase.CreateChannelInput{
		Name:    "Doomed",
		OwnerID: 1,
	})
	require.NoError(t, err)

	require.ErrorIs(t, fixtures.service.Delete(context.Background(), created.ID, 2), domainerrors.ErrForbidden)
	require.NoError(t, fixtures.service.Delete(context.Background(), created.ID, 1))

	_, err = fixtures.service.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, domainerrors.ErrChannelNotFound)
}
