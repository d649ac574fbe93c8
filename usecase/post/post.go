package post

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
	"github.com/fastygo/journal/usecase"
)

type Input struct {
	Content    string
	Emotion    string
	Visibility string
}

type ReactionResult struct {
	Result domain.ReactionResult `json:"result"`
	Post   View                  `json:"post"`
}

type UseCase struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	friends  repository.FriendRequestRepository
	events   usecase.EventPublisher
	logger   *zap.Logger
}

func New(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository, friends repository.FriendRequestRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{posts: posts, comments: comments, users: users, friends: friends, events: events, logger: logger}
}

func (uc *UseCase) Create(ctx context.Context, authorID string, in Input) (View, error) {
	p, err := domain.NewPost(authorID, in.Content, in.Emotion, in.Visibility)
	if err != nil {
		return View{}, err
	}
	if err := uc.posts.Create(ctx, p); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, p)
	return ViewOf(p), nil
}

func (uc *UseCase) Get(ctx context.Context, viewerID, id string) (View, error) {
	p, err := uc.visible(ctx, viewerID, id)
	if err != nil {
		return View{}, err
	}
	counts, err := uc.comments.CountByPosts(ctx, []string{p.ID()})
	if err != nil {
		return View{}, err
	}
	view := ViewOf(p)
	view.CommentCount = counts[p.ID()]
	return view, nil
}

// ListFeed pages the viewer's feed and decorates it with comment counts and author profiles.
func (uc *UseCase) ListFeed(ctx context.Context, viewerID string, page domain.PageRequest) (domain.Page[View], error) {
	result, err := uc.posts.ListFeed(ctx, viewerID, page)
	if err != nil {
		return domain.Page[View]{}, err
	}
	out := domain.MapPage(result, ViewOf)
	if len(result.Items) == 0 {
		return out, nil
	}

	postIDs := lo.Map(result.Items, func(p *domain.Post, _ int) string { return p.ID() })
	authorIDs := lo.Uniq(lo.Map(result.Items, func(p *domain.Post, _ int) string { return p.AuthorID() }))

	var (
		counts  map[string]int
		authors map[string]domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = uc.comments.CountByPosts(gctx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = uc.users.GetByIDs(gctx, authorIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Page[View]{}, err
	}

	for i := range out.Items {
		out.Items[i].CommentCount = counts[out.Items[i].ID]
		if u, ok := authors[out.Items[i].AuthorID]; ok {
			out.Items[i].Author = &AuthorView{ID: u.ID, Name: u.Name, Image: u.Image}
		}
	}
	return out, nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id string, in Input) (View, error) {
	p, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	if err := p.EnsureAuthor(actorID); err != nil {
		return View{}, err
	}
	if err := p.Update(in.Content, in.Emotion, in.Visibility); err != nil {
		return View{}, err
	}
	if err := uc.posts.Update(ctx, p); err != nil {
		return View{}, err
	}
	usecase.Publish(ctx, uc.events, p)
	return ViewOf(p), nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	p, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.EnsureAuthor(actorID); err != nil {
		return err
	}
	return uc.posts.Delete(ctx, id)
}

func (uc *UseCase) ToggleReaction(ctx context.Context, actorID, id, emoji string) (ReactionResult, error) {
	p, err := uc.visible(ctx, actorID, id)
	if err != nil {
		return ReactionResult{}, err
	}
	result, err := p.ToggleReaction(actorID, emoji)
	if err != nil {
		return ReactionResult{}, err
	}
	if err := uc.posts.Update(ctx, p); err != nil {
		return ReactionResult{}, err
	}
	usecase.Publish(ctx, uc.events, p)
	return ReactionResult{Result: result, Post: ViewOf(p)}, nil
}

func (uc *UseCase) AddComment(ctx context.Context, actorID, postID, content string) (CommentView, error) {
	p, err := uc.visible(ctx, actorID, postID)
	if err != nil {
		return CommentView{}, err
	}
	c, err := domain.NewComment(p.ID(), p.AuthorID(), actorID, content)
	if err != nil {
		return CommentView{}, err
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return CommentView{}, err
	}
	usecase.Publish(ctx, uc.events, c)
	return CommentViewOf(c), nil
}

func (uc *UseCase) ListComments(ctx context.Context, viewerID, postID string, page domain.PageRequest) (domain.Page[CommentView], error) {
	if _, err := uc.visible(ctx, viewerID, postID); err != nil {
		return domain.Page[CommentView]{}, err
	}
	result, err := uc.comments.ListByPost(ctx, postID, page)
	if err != nil {
		return domain.Page[CommentView]{}, err
	}
	return domain.MapPage(result, CommentViewOf), nil
}

// DeleteComment is allowed for the comment author and the post author.
func (uc *UseCase) DeleteComment(ctx context.Context, actorID, commentID string) error {
	c, err := uc.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID() != actorID {
		p, err := uc.posts.GetByID(ctx, c.PostID())
		if err != nil {
			return err
		}
		if p.AuthorID() != actorID {
			return domain.Forbidden("only the comment or post author can delete a comment")
		}
	}
	return uc.comments.Delete(ctx, commentID)
}

// visible loads a post and hides it as NOT_FOUND from viewers it is not shared with.
func (uc *UseCase) visible(ctx context.Context, viewerID, id string) (*domain.Post, error) {
	p, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case p.AuthorID() == viewerID, p.Visibility() == domain.VisibilityPublic:
		return p, nil
	case p.Visibility() == domain.VisibilityFriends:
		fr, found, err := uc.friends.FindBetween(ctx, viewerID, p.AuthorID())
		if err != nil {
			return nil, err
		}
		if found && fr.Status() == domain.FriendRequestAccepted {
			return p, nil
		}
	}
	return nil, domain.NotFound("post %s not found", id)
}
