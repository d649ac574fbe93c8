package domain

import "time"

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityFriends Visibility = "friends"
	VisibilityPublic  Visibility = "public"
)

func NewVisibility(raw string) (Visibility, error) {
	switch v := Visibility(raw); v {
	case VisibilityPrivate, VisibilityFriends, VisibilityPublic:
		return v, nil
	case "":
		return VisibilityFriends, nil
	default:
		return "", Invalid("unknown visibility %q", raw)
	}
}

// Post is a journal entry shared with friends. Reactions are diff-tracked.
type Post struct {
	AggregateRoot

	id         string
	authorID   string
	content    Content
	emotion    *Emotion
	visibility Visibility
	reactions  *ReactionSet
	createdAt  time.Time
	updatedAt  time.Time
}

func NewPost(authorID, content, emotion, visibility string) (*Post, error) {
	if authorID == "" {
		return nil, Invalid("author id is required")
	}
	p := &Post{id: newID(), authorID: authorID, reactions: NewReactionSet(nil)}
	if err := p.apply(content, emotion, visibility); err != nil {
		return nil, err
	}
	p.createdAt = Touch()
	p.updatedAt = p.createdAt
	p.record(PostCreated{EventBase: newEventBase(p.id, p.createdAt), AuthorID: authorID})
	return p, nil
}

func ReconstitutePost(id, authorID, content string, emotion *Emotion, visibility Visibility, reactions []Reaction, createdAt, updatedAt time.Time) *Post {
	return &Post{
		id:         id,
		authorID:   authorID,
		content:    Content(content),
		emotion:    emotion,
		visibility: visibility,
		reactions:  NewReactionSet(reactions),
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *Post) ID() string              { return p.id }
func (p *Post) AuthorID() string        { return p.authorID }
func (p *Post) Content() string         { return string(p.content) }
func (p *Post) Emotion() *Emotion       { return p.emotion }
func (p *Post) Visibility() Visibility  { return p.visibility }
func (p *Post) Reactions() *ReactionSet { return p.reactions }
func (p *Post) CreatedAt() time.Time    { return p.createdAt }
func (p *Post) UpdatedAt() time.Time    { return p.updatedAt }

func (p *Post) EnsureAuthor(actorID string) error {
	if actorID != p.authorID {
		return Forbidden("post belongs to another user")
	}
	return nil
}

func (p *Post) Update(content, emotion, visibility string) error {
	if err := p.apply(content, emotion, visibility); err != nil {
		return err
	}
	p.updatedAt = Touch()
	p.record(PostUpdated{EventBase: newEventBase(p.id, p.updatedAt), AuthorID: p.authorID})
	return nil
}

func (p *Post) ToggleReaction(actorID, emoji string) (ReactionResult, error) {
	at := Touch()
	result, e, err := toggleReaction(p.reactions, actorID, emoji, at)
	if err != nil {
		return "", err
	}
	p.record(PostReactionToggled{
		EventBase: newEventBase(p.id, at),
		AuthorID:  p.authorID,
		UserID:    actorID,
		Emoji:     string(e),
		Result:    result,
	})
	return result, nil
}

func (p *Post) apply(content, emotion, visibility string) error {
	c, err := NewContent(content)
	if err != nil {
		return err
	}
	v, err := NewVisibility(visibility)
	if err != nil {
		return err
	}
	var e *Emotion
	if emotion != "" {
		parsed, err := NewEmotion(emotion)
		if err != nil {
			return err
		}
		e = &parsed
	}
	p.content, p.visibility, p.emotion = c, v, e
	return nil
}

// Comment is a reply under a post.
type Comment struct {
	AggregateRoot

	id        string
	postID    string
	authorID  string
	content   Content
	createdAt time.Time
}

// NewComment needs the post author so the resulting event can reach them.
func NewComment(postID, postAuthorID, authorID, content string) (*Comment, error) {
	if postID == "" || authorID == "" {
		return nil, Invalid("post id and author id are required")
	}
	c, err := NewContent(content)
	if err != nil {
		return nil, err
	}
	at := Touch()
	cm := &Comment{id: newID(), postID: postID, authorID: authorID, content: c, createdAt: at}
	cm.record(CommentAdded{
		EventBase:    newEventBase(cm.id, at),
		PostID:       postID,
		PostAuthorID: postAuthorID,
		AuthorID:     authorID,
		Preview:      c.Preview(previewLength),
	})
	return cm, nil
}

func ReconstituteComment(id, postID, authorID, content string, createdAt time.Time) *Comment {
	return &Comment{id: id, postID: postID, authorID: authorID, content: Content(content), createdAt: createdAt}
}

func (c *Comment) ID() string           { return c.id }
func (c *Comment) PostID() string       { return c.postID }
func (c *Comment) AuthorID() string     { return c.authorID }
func (c *Comment) Content() string      { return string(c.content) }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
