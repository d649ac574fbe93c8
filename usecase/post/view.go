package post

import (
	"time"

	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
)

type AuthorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type ReactionView struct {
	UserID    string    `json:"userId"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

type View struct {
	ID             string         `json:"id"`
	AuthorID       string         `json:"authorId"`
	Author         *AuthorView    `json:"author,omitempty"`
	Content        string         `json:"content"`
	Emotion        *string        `json:"emotion,omitempty"`
	Visibility     string         `json:"visibility"`
	Reactions      []ReactionView `json:"reactions"`
	ReactionCounts map[string]int `json:"reactionCounts"`
	CommentCount   int            `json:"commentCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func ViewOf(p *domain.Post) View {
	reactions := p.Reactions().Items()
	view := View{
		ID:         p.ID(),
		AuthorID:   p.AuthorID(),
		Content:    p.Content(),
		Visibility: string(p.Visibility()),
		Reactions: lo.Map(reactions, func(r domain.Reaction, _ int) ReactionView {
			return ReactionView{UserID: r.UserID, Emoji: string(r.Emoji), CreatedAt: r.CreatedAt}
		}),
		ReactionCounts: domain.ReactionSummary(reactions),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
	if e := p.Emotion(); e != nil {
		view.Emotion = lo.ToPtr(string(*e))
	}
	return view
}

func CommentViewOf(c *domain.Comment) CommentView {
	return CommentView{ID: c.ID(), PostID: c.PostID(), AuthorID: c.AuthorID(), Content: c.Content(), CreatedAt: c.CreatedAt()}
}
