package impl

import (
	"context"
	"io"
	"log/slog"

	"clipstream/config"
	"clipstream/internal/domain/entity"
	domainerrors "clipstream/internal/domain/errors"
	"clipstream/internal/domain/repository"
	"clipstream/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	cfg.JWT = &config.JWTConfig{
		Secret:           "test_secret_key_very_long_for_testing",
		Algorithm:        "HS256",
		AccessTTLMinutes: 30,
		RefreshTTLDays:   30,
	}

	return cfg
}

// --- In-memory repository fakes ---
// The fakes store copies so tests observe only what the repositories
// persisted, not aliased entities mutated after the fact.

type fakeUserRepo struct {
	nextID uint64
	users  map[uint64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	for _, user := range r.users {
		if user.GoogleID != "" && user.GoogleID == googleID {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailAlreadyRegistered
		}
	}

	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) UpdateRefreshTokenHash(_ context.Context, id uint64, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshTokenHash = hash

	return nil
}

type fakeVideoRepo struct {
	nextID uint64
	videos map[uint64]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uint64]*entity.Video)}
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uint64) (*entity.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrVideoNotFound
	}
	clone := *video

	return &clone, nil
}

func (r *fakeVideoRepo) List(_ context.Context, filter repository.VideoListFilter) ([]*entity.Video, error) {
	var result []*entity.Video
	for _, video := range r.videos {
		if filter.PublishedOnly && !video.IsPublished {
			continue
		}
		if filter.UploaderID != 0 && video.UploaderID != filter.UploaderID {
			continue
		}
		if filter.ChannelID != 0 && video.ChannelID != filter.ChannelID {
			continue
		}
		clone := *video
		result = append(result, &clone)
	}

	return result, nil
}

func (r *fakeVideoRepo) Create(_ context.Context, video *entity.Video) error {
	r.nextID++
	video.ID = r.nextID
	clone := *video
	r.videos[video.ID] = &clone

	return nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *entity.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repository.ErrVideoNotFound
	}
	clone := *video
	r.videos[video.ID] = &clone

	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.videos[id]; !ok {
		return repository.ErrVideoNotFound
	}
	delete(r.videos, id)

	return nil
}

func (r *fakeVideoRepo) IncrementViewCount(_ context.Context, id uint64) error {
	video, ok := r.videos[id]
	if !ok {
		return repository.ErrVideoNotFound
	}
	video.ViewCount++

	return nil
}

func (r *fakeVideoRepo) AdjustLikeCount(_ context.Context, id uint64, delta int) error {
	video, ok := r.videos[id]
	if !ok {
		return repository.ErrVideoNotFound
	}
	video.LikeCount += int64(delta)
	if video.LikeCount < 0 {
		video.LikeCount = 0
	}

	return nil
}

type fakeChannelRepo struct {
	nextID   uint64
	channels map[uint64]*entity.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[uint64]*entity.Channel)}
}

func (r *fakeChannelRepo) FindByID(_ context.Context, id uint64) (*entity.Channel, error) {
	channel, ok := r.channels[id]
	if !ok {
		return nil, repository.ErrChannelNotFound
	}
	clone := *channel

	return &clone, nil
}

func (r *fakeChannelRepo) List(_ context.Context, _, _ int) ([]*entity.Channel, error) {
	var result []*entity.Channel
	for _, channel := range r.channels {
		clone := *channel
		result = append(result, &clone)
	}

	return result, nil
}

func (r *fakeChannelRepo) Create(_ context.Context, channel *entity.Channel) error {
	r.nextID++
	channel.ID = r.nextID
	clone := *channel
	r.channels[channel.ID] = &clone

	return nil
}

func (r *fakeChannelRepo) Update(_ context.Context, channel *entity.Channel) error {
	if _, ok := r.channels[channel.ID]; !ok {
		return repository.ErrChannelNotFound
	}
	clone := *channel
	r.channels[channel.ID] = &clone

	return nil
}

func (r *fakeChannelRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.channels[id]; !ok {
		return repository.ErrChannelNotFound
	}
	delete(r.channels, id)

	return nil
}

type fakeRecommendationRepo struct {
	nextID uint64
	recs   []*entity.Recommendation
	videos *fakeVideoRepo
}

func newFakeRecommendationRepo(videos *fakeVideoRepo) *fakeRecommendationRepo {
	return &fakeRecommendationRepo{videos: videos}
}

func (r *fakeRecommendationRepo) ListForUser(_ context.Context, userID uint64, limit int) ([]*repository.RecommendedVideo, error) {
	var result []*repository.RecommendedVideo
	for _, rec := range r.recs {
		if rec.UserID != userID {
			continue
		}
		video, ok := r.videos.videos[rec.VideoID]
		if !ok || !video.IsPublished || video.UploaderID == userID {
			continue
		}
		recClone := *rec
		videoClone := *video
		result = append(result, &repository.RecommendedVideo{
			Recommendation: &recClone,
			Video:          &videoClone,
		})
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}

func (r *fakeRecommendationRepo) Create(_ context.Context, rec *entity.Recommendation) error {
	r.nextID++
	rec.ID = r.nextID
	clone := *rec
	r.recs = append(r.recs, &clone)

	return nil
}

func seedVideoEntity(uploaderID, channelID uint64, published bool) *entity.Video {
	return &entity.Video{
		Title:       "Seeded",
		VideoURL:    "https://cdn.example.com/v.mp4",
		IsPublished: published,
		UploaderID:  uploaderID,
		ChannelID:   channelID,
	}
}

// --- Transaction fakes ---

// fakeRepoFactory hands the shared fakes to the code under test.
type fakeRepoFactory struct {
	userRepo    *fakeUserRepo
	videoRepo   *fakeVideoRepo
	channelRepo *fakeChannelRepo
	recRepo     *fakeRecommendationRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepoFactory) NewVideoRepository() repository.VideoRepository {
	return f.videoRepo
}

func (f *fakeRepoFactory) NewChannelRepository() repository.ChannelRepository {
	return f.channelRepo
}

func (f *fakeRepoFactory) NewRecommendationRepository() repository.RecommendationRepository {
	return f.recRepo
}

// fakeTxManager runs the unit of work directly; rollback semantics are not
// simulated, tests assert on the returned errors instead.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func newFakeTxManager() *fakeTxManager {
	videos := newFakeVideoRepo()

	return &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:    newFakeUserRepo(),
		videoRepo:   videos,
		channelRepo: newFakeChannelRepo(),
		recRepo:     newFakeRecommendationRepo(videos),
	}}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- Google verifier fake ---

type fakeGoogleVerifier struct {
	user *service.GoogleUser
	err  error

	accessTokenCalls int
	idTokenCalls     int
}

func (v *fakeGoogleVerifier) VerifyAccessToken(_ context.Context, _ string) (*service.GoogleUser, error) {
	v.accessTokenCalls++

	return v.user, v.err
}

func (v *fakeGoogleVerifier) VerifyIDToken(_ context.Context, _ string) (*service.GoogleUser, error) {
	v.idTokenCalls++

	return v.user, v.err
}
