package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

type ucFixture struct {
	notifications *mocks.MockNotificationRepository
	preferences   *mocks.MockPreferencesRepository
	tokens        *mocks.MockPushTokenRepository
	events        *mocks.MockEventPublisher
	uc            *UseCase
}

func newUCFixture(t *testing.T) *ucFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &ucFixture{
		notifications: mocks.NewMockNotificationRepository(ctrl),
		preferences:   mocks.NewMockPreferencesRepository(ctrl),
		tokens:        mocks.NewMockPushTokenRepository(ctrl),
		events:        mocks.NewMockEventPublisher(ctrl),
	}
	f.uc = New(f.notifications, f.preferences, f.tokens, f.events, nil)
	return f
}

func storedNotification(t *testing.T, userID string) *domain.Notification {
	t.Helper()
	n, err := domain.NewNotification(userID, domain.NotificationRewardEarned, "Achievement unlocked", "First mood", nil)
	require.NoError(t, err)
	n.ClearEvents()
	return n
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("first read persists and publishes", func(t *testing.T) {
		req := require.New(t)
		f := newUCFixture(t)
		n := storedNotification(t, "alice")
		f.notifications.EXPECT().GetByID(gomock.Any(), n.ID()).Return(n, nil)
		f.notifications.EXPECT().Update(gomock.Any(), n).Return(nil)
		f.events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(1)

		view, err := f.uc.MarkAsRead(ctx, "alice", n.ID())
		req.NoError(err)
		req.True(view.Read)
		req.NotNil(view.ReadAt)
	})

	t.Run("already read is a no-op write", func(t *testing.T) {
		req := require.New(t)
		f := newUCFixture(t)
		n := storedNotification(t, "alice")
		req.NoError(n.MarkAsRead("alice"))
		n.ClearEvents()
		f.notifications.EXPECT().GetByID(gomock.Any(), n.ID()).Return(n, nil)

		_, err := f.uc.MarkAsRead(ctx, "alice", n.ID())
		req.NoError(err)
	})

	t.Run("someone else's notification is forbidden", func(t *testing.T) {
		f := newUCFixture(t)
		n := storedNotification(t, "alice")
		f.notifications.EXPECT().GetByID(gomock.Any(), n.ID()).Return(n, nil)

		_, err := f.uc.MarkAsRead(ctx, "bob", n.ID())
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		req := require.New(t)
		f := newUCFixture(t)
		f.preferences.EXPECT().Get(gomock.Any(), "alice").Return(domain.NotificationPreferences{}, false, nil)

		view, err := f.uc.GetPreferences(ctx, "alice")
		req.NoError(err)
		req.Equal(PreferencesView{Enabled: true, FriendRequests: true, Messages: true, Rewards: true}, view)
	})

	t.Run("patch only touches the given toggles", func(t *testing.T) {
		req := require.New(t)
		f := newUCFixture(t)
		off := false
		f.preferences.EXPECT().Get(gomock.Any(), "alice").Return(domain.NotificationPreferences{}, false, nil)
		f.preferences.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.NotificationPreferences) error {
			req.Equal("alice", p.UserID)
			req.False(p.Messages)
			req.True(p.Enabled)
			return nil
		})

		view, err := f.uc.UpdatePreferences(ctx, "alice", PreferencesPatch{Messages: &off})
		req.NoError(err)
		req.False(view.Messages)
		req.True(view.Rewards)
	})
}

func TestPushTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("register normalizes the platform", func(t *testing.T) {
		req := require.New(t)
		f := newUCFixture(t)
		f.tokens.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil)

		view, err := f.uc.RegisterPushToken(ctx, "alice", " ExponentPushToken[abc] ", "IOS")
		req.NoError(err)
		req.Equal("ExponentPushToken[abc]", view.Token)
		req.Equal(domain.PlatformIOS, view.Platform)
	})

	t.Run("unknown platform is invalid", func(t *testing.T) {
		f := newUCFixture(t)
		_, err := f.uc.RegisterPushToken(ctx, "alice", "tok", "blackberry")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}
