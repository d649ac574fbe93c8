package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const conversationColumns = `c.id, c.created_by, c.last_message_id, c.last_message_sender_id,
	c.last_message_preview, c.last_message_at, c.created_at, c.updated_at`

const participantsByConversations = `
	SELECT conversation_id, user_id, joined_at, last_read_at
	FROM conversation_participants
	WHERE conversation_id = ANY($1)
	ORDER BY position, user_id
	`

type conversationRepository struct {
	db *DB
}

// NewConversationRepository returns a Postgres-backed ConversationRepository.
func NewConversationRepository(db *DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

type conversationRow struct {
	id, createdBy        string
	lastID, lastSenderID *string
	lastPreview          *string
	lastAt               *time.Time
	createdAt, updatedAt time.Time
}

type participantRow struct {
	conversationID string
	domain.Participant
}

func (r *conversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	if c == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "conversation.create", func(ctx context.Context, q Querier) error {
		const query = `
		INSERT INTO conversations (id, created_by, last_message_id, last_message_sender_id, last_message_preview, last_message_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		lastID, lastSender, lastPreview, lastAt := lastMessageArgs(c.LastMessage())
		if _, err := q.Exec(ctx, query, c.ID(), c.CreatedBy(), lastID, lastSender, lastPreview, lastAt, c.CreatedAt(), c.UpdatedAt()); err != nil {
			return err
		}
		return insertParticipants(ctx, q, c)
	})
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE c.id = $1`
	q := r.db.conn(ctx)
	row, err := scanConversationRow(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound("conversation.get", err, domain.ErrConversationNotFound)
	}
	items, err := r.hydrate(ctx, q, []conversationRow{row})
	if err != nil {
		return nil, mapError("conversation.get", err)
	}
	return items[0], nil
}

func (r *conversationRepository) FindDirect(ctx context.Context, a, b string) (*domain.Conversation, bool, error) {
	query := `SELECT ` + conversationColumns + `
	FROM conversations c
	WHERE (SELECT COUNT(*) FROM conversation_participants p WHERE p.conversation_id = c.id) = 2
	  AND EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.user_id = $1)
	  AND EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.user_id = $2)
	ORDER BY c.created_at
	LIMIT 1
	`
	q := r.db.conn(ctx)
	row, err := scanConversationRow(q.QueryRow(ctx, query, a, b))
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, mapError("conversation.find_direct", err)
	}
	items, err := r.hydrate(ctx, q, []conversationRow{row})
	if err != nil {
		return nil, false, mapError("conversation.find_direct", err)
	}
	return items[0], true, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string, page domain.PageRequest) (domain.Page[*domain.Conversation], error) {
	const membership = `EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.user_id = $1)`
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM conversations c WHERE `+membership, userID)
	if err != nil {
		return domain.Page[*domain.Conversation]{}, mapError("conversation.list", err)
	}

	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE ` + membership + `
	ORDER BY c.updated_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Conversation]{}, mapError("conversation.list", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (conversationRow, error) { return scanConversationRow(rows) })
	if err != nil {
		return domain.Page[*domain.Conversation]{}, mapError("conversation.list", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Conversation]{}, mapError("conversation.list", err)
	}
	return domain.Page[*domain.Conversation]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and replaces the participant rows.
func (r *conversationRepository) Update(ctx context.Context, c *domain.Conversation) error {
	if c == nil {
		return domain.ErrInvalidPayload
	}
	return r.db.write(ctx, "conversation.update", func(ctx context.Context, q Querier) error {
		const query = `
		UPDATE conversations
		SET last_message_id = $2,
			last_message_sender_id = $3,
			last_message_preview = $4,
			last_message_at = $5,
			updated_at = $6
		WHERE id = $1
		`
		lastID, lastSender, lastPreview, lastAt := lastMessageArgs(c.LastMessage())
		tag, err := q.Exec(ctx, query, c.ID(), lastID, lastSender, lastPreview, lastAt, c.UpdatedAt())
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrConversationNotFound); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM conversation_participants WHERE conversation_id = $1`, c.ID()); err != nil {
			return err
		}
		return insertParticipants(ctx, q, c)
	})
}

func (r *conversationRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, "conversation.delete", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOne(tag, domain.ErrConversationNotFound)
	})
}

func (r *conversationRepository) hydrate(ctx context.Context, q Querier, roots []conversationRow) ([]*domain.Conversation, error) {
	ids := lo.Map(roots, func(row conversationRow, _ int) string { return row.id })
	participants, err := loadChildren(ctx, q, participantsByConversations, ids, scanParticipantRow,
		func(p participantRow) string { return p.conversationID })
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Conversation, 0, len(roots))
	for _, row := range roots {
		members := lo.Map(participants[row.id], func(p participantRow, _ int) domain.Participant { return p.Participant })
		var last *domain.LastMessage
		if row.lastID != nil && row.lastAt != nil {
			last = &domain.LastMessage{
				MessageID: *row.lastID,
				SenderID:  derefString(row.lastSenderID),
				Preview:   derefString(row.lastPreview),
				SentAt:    *row.lastAt,
			}
		}
		out = append(out, domain.ReconstituteConversation(row.id, row.createdBy, members, last, row.createdAt, row.updatedAt))
	}
	return out, nil
}

func insertParticipants(ctx context.Context, q Querier, c *domain.Conversation) error {
	batch := newBulkInsert("conversation_participants", "conversation_id", "user_id", "position", "joined_at", "last_read_at")
	for i, p := range c.Participants() {
		batch.add(c.ID(), p.UserID, i, p.JoinedAt, nullTime(p.LastReadAt))
	}
	return batch.exec(ctx, q)
}

func lastMessageArgs(last *domain.LastMessage) (any, any, any, any) {
	if last == nil {
		return nil, nil, nil, nil
	}
	return last.MessageID, last.SenderID, last.Preview, last.SentAt
}

func scanConversationRow(row scanner) (conversationRow, error) {
	var c conversationRow
	err := row.Scan(&c.id, &c.createdBy, &c.lastID, &c.lastSenderID, &c.lastPreview, &c.lastAt, &c.createdAt, &c.updatedAt)
	return c, err
}

func scanParticipantRow(rows pgx.Rows) (participantRow, error) {
	var p participantRow
	err := rows.Scan(&p.conversationID, &p.UserID, &p.JoinedAt, &p.LastReadAt)
	return p, err
}
