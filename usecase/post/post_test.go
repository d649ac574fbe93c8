package post

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/mocks"
)

type fixture struct {
	posts    *mocks.MockPostRepository
	comments *mocks.MockCommentRepository
	users    *mocks.MockUserRepository
	friends  *mocks.MockFriendRequestRepository
	uc       *UseCase
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		posts:    mocks.NewMockPostRepository(ctrl),
		comments: mocks.NewMockCommentRepository(ctrl),
		users:    mocks.NewMockUserRepository(ctrl),
		friends:  mocks.NewMockFriendRequestRepository(ctrl),
	}
	f.uc = New(f.posts, f.comments, f.users, f.friends, nil, nil)
	return f
}

func storedPost(id, author string, visibility domain.Visibility) *domain.Post {
	now := time.Now().UTC()
	return domain.ReconstitutePost(id, author, "dear diary", nil, visibility, nil, now, now)
}

func TestVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("friends-only post is hidden from strangers", func(t *testing.T) {
		f := newFixture(t)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityFriends), nil)
		f.friends.EXPECT().FindBetween(gomock.Any(), "bob", "alice").Return(nil, false, nil)

		_, err := f.uc.Get(ctx, "bob", "p1")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
	})

	t.Run("friends-only post is visible to an accepted friend", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		accepted := domain.ReconstituteFriendRequest("fr1", "alice", "bob", domain.FriendRequestAccepted, time.Now(), nil)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityFriends), nil)
		f.friends.EXPECT().FindBetween(gomock.Any(), "bob", "alice").Return(accepted, true, nil)
		f.comments.EXPECT().CountByPosts(gomock.Any(), []string{"p1"}).Return(map[string]int{"p1": 3}, nil)

		view, err := f.uc.Get(ctx, "bob", "p1")
		req.NoError(err)
		req.Equal(3, view.CommentCount)
	})

	t.Run("private post is visible to its author only", func(t *testing.T) {
		f := newFixture(t)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityPrivate), nil)

		_, err := f.uc.Get(ctx, "bob", "p1")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
	})
}

func TestListFeed(t *testing.T) {
	ctx := context.Background()
	page := domain.PageRequest{Page: 1, Limit: 20}

	t.Run("decorates posts with counts and authors", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		posts := []*domain.Post{
			storedPost("p1", "alice", domain.VisibilityPublic),
			storedPost("p2", "alice", domain.VisibilityPublic),
			storedPost("p3", "carol", domain.VisibilityPublic),
		}
		f.posts.EXPECT().ListFeed(gomock.Any(), "bob", page).Return(domain.Page[*domain.Post]{Items: posts, Total: 3, Request: page}, nil)
		f.comments.EXPECT().CountByPosts(gomock.Any(), []string{"p1", "p2", "p3"}).Return(map[string]int{"p2": 1}, nil)
		f.users.EXPECT().GetByIDs(gomock.Any(), []string{"alice", "carol"}).Return(map[string]domain.User{
			"alice": {ID: "alice", Name: "Alice"},
		}, nil)

		out, err := f.uc.ListFeed(ctx, "bob", page)
		req.NoError(err)
		req.Len(out.Items, 3)
		req.Equal(1, out.Items[1].CommentCount)
		req.Equal("Alice", out.Items[0].Author.Name)
		req.Nil(out.Items[2].Author)
	})

	t.Run("a failing lookup fails the page", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("boom")
		f.posts.EXPECT().ListFeed(gomock.Any(), "bob", page).Return(domain.Page[*domain.Post]{
			Items: []*domain.Post{storedPost("p1", "alice", domain.VisibilityPublic)}, Total: 1, Request: page,
		}, nil)
		f.comments.EXPECT().CountByPosts(gomock.Any(), gomock.Any()).Return(nil, boom)
		f.users.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(map[string]domain.User{}, nil).AnyTimes()

		_, err := f.uc.ListFeed(ctx, "bob", page)
		require.ErrorIs(t, err, boom)
	})

	t.Run("empty page skips the lookups", func(t *testing.T) {
		f := newFixture(t)
		f.posts.EXPECT().ListFeed(gomock.Any(), "bob", page).Return(domain.Page[*domain.Post]{Request: page}, nil)

		out, err := f.uc.ListFeed(ctx, "bob", page)
		require.NoError(t, err)
		require.Empty(t, out.Items)
	})
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("comment carries the post author", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		comments := mocks.NewMockCommentRepository(ctrl)
		events := mocks.NewMockEventPublisher(ctrl)
		uc := New(posts, comments, mocks.NewMockUserRepository(ctrl), mocks.NewMockFriendRequestRepository(ctrl), events, nil)

		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityPublic), nil)
		comments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		events.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, evs ...domain.Event) {
			added := evs[0].(domain.CommentAdded)
			req.Equal("alice", added.PostAuthorID)
			req.Equal("bob", added.AuthorID)
		})

		view, err := uc.AddComment(ctx, "bob", "p1", "nice")
		req.NoError(err)
		req.Equal("nice", view.Content)
	})

	t.Run("post author may delete any comment", func(t *testing.T) {
		f := newFixture(t)
		c := domain.ReconstituteComment("c1", "p1", "bob", "nice", time.Now())
		f.comments.EXPECT().GetByID(gomock.Any(), "c1").Return(c, nil)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityPublic), nil)
		f.comments.EXPECT().Delete(gomock.Any(), "c1").Return(nil)

		require.NoError(t, f.uc.DeleteComment(ctx, "alice", "c1"))
	})

	t.Run("a third user may not", func(t *testing.T) {
		f := newFixture(t)
		c := domain.ReconstituteComment("c1", "p1", "bob", "nice", time.Now())
		f.comments.EXPECT().GetByID(gomock.Any(), "c1").Return(c, nil)
		f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(storedPost("p1", "alice", domain.VisibilityPublic), nil)

		err := f.uc.DeleteComment(ctx, "carol", "c1")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})
}

func TestToggleReaction(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	p := storedPost("p1", "alice", domain.VisibilityPublic)
	f.posts.EXPECT().GetByID(gomock.Any(), "p1").Return(p, nil).Times(2)
	f.posts.EXPECT().Update(gomock.Any(), p).Return(nil).Times(2)

	first, err := f.uc.ToggleReaction(context.Background(), "bob", "p1", "❤️")
	req.NoError(err)
	req.Equal(domain.ReactionAdded, first.Result)
	req.Equal(1, first.Post.ReactionCounts["❤️"])

	second, err := f.uc.ToggleReaction(context.Background(), "bob", "p1", "❤️")
	req.NoError(err)
	req.Equal(domain.ReactionRemoved, second.Result)
}
