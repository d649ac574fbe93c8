package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"

	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/repository"
)

const messageColumns = `id, conversation_id, sender_id, content, created_at, edited_at, deleted_at`

const attachmentsByMessages = `
	SELECT message_id, id, url, mime_type, size, position
	FROM message_attachments
	WHERE message_id = ANY($1)
	ORDER BY position
	`

type messageRepository struct {
	db *DB
}

// NewMessageRepository returns a Postgres-backed MessageRepository.
func NewMessageRepository(db *DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

type messageRow struct {
	id, conversationID, senderID string
	content                      *string
	createdAt                    time.Time
	editedAt, deletedAt          *time.Time
}

type attachmentRow struct {
	messageID string
	domain.Attachment
}

// Create writes the root row plus one batch per non-empty child collection.
func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "message.create", func(ctx context.Context, q Querier) error {
		query := `INSERT INTO messages (` + messageColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := q.Exec(ctx, query,
			m.ID(), m.ConversationID(), m.SenderID(), m.Content(), m.CreatedAt(), nullTime(m.EditedAt()), nullTime(m.DeletedAt()),
		); err != nil {
			return err
		}

		batch := newBulkInsert("message_attachments", "id", "message_id", "url", "mime_type", "size", "position")
		for _, a := range m.Attachments() {
			batch.add(a.ID, m.ID(), a.URL, a.MimeType, a.Size, a.Position)
		}
		if err := batch.exec(ctx, q); err != nil {
			return err
		}
		return messageReactions.writeDiff(ctx, q, m.ID(), m.Reactions())
	})
	if err != nil {
		return err
	}
	m.Reactions().Commit()
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	q := r.db.conn(ctx)
	row, err := scanMessageRow(q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("message.get", err, domain.ErrMessageNotFound)
	}
	items, err := r.hydrate(ctx, q, []messageRow{row})
	if err != nil {
		return nil, mapError("message.get", err)
	}
	return items[0], nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string, page domain.PageRequest) (domain.Page[*domain.Message], error) {
	req, limit, offset := pageArgs(page)
	q := r.db.conn(ctx)

	total, err := count(ctx, q, `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return domain.Page[*domain.Message]{}, mapError("message.list", err)
	}
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := q.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return domain.Page[*domain.Message]{}, mapError("message.list", err)
	}
	roots, err := collect(rows, func(rows pgx.Rows) (messageRow, error) { return scanMessageRow(rows) })
	if err != nil {
		return domain.Page[*domain.Message]{}, mapError("message.list", err)
	}
	items, err := r.hydrate(ctx, q, roots)
	if err != nil {
		return domain.Page[*domain.Message]{}, mapError("message.list", err)
	}
	return domain.Page[*domain.Message]{Items: items, Total: total, Request: req}, nil
}

// Update rewrites the root and applies the reaction diff. Attachments never change after creation.
func (r *messageRepository) Update(ctx context.Context, m *domain.Message) error {
	if m == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.write(ctx, "message.update", func(ctx context.Context, q Querier) error {
		const query = `
		UPDATE messages
		SET content = $2,
			edited_at = $3,
			deleted_at = $4
		WHERE id = $1
		`
		tag, err := q.Exec(ctx, query, m.ID(), m.Content(), nullTime(m.EditedAt()), nullTime(m.DeletedAt()))
		if err != nil {
			return err
		}
		if err := expectOne(tag, domain.ErrMessageNotFound); err != nil {
			return err
		}
		return messageReactions.writeDiff(ctx, q, m.ID(), m.Reactions())
	})
	if err != nil {
		return err
	}
	m.Reactions().Commit()
	return nil
}

func (r *messageRepository) hydrate(ctx context.Context, q Querier, roots []messageRow) ([]*domain.Message, error) {
	ids := lo.Map(roots, func(row messageRow, _ int) string { return row.id })
	attachments, err := loadChildren(ctx, q, attachmentsByMessages, ids, scanAttachmentRow,
		func(a attachmentRow) string { return a.messageID })
	if err != nil {
		return nil, err
	}
	reactions, err := messageReactions.load(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Message, 0, len(roots))
	for _, row := range roots {
		atts := lo.Map(attachments[row.id], func(a attachmentRow, _ int) domain.Attachment { return a.Attachment })
		out = append(out, domain.ReconstituteMessage(
			row.id, row.conversationID, row.senderID, row.content,
			atts, reactionsOf(reactions[row.id]),
			row.createdAt, row.editedAt, row.deletedAt,
		))
	}
	return out, nil
}

func scanMessageRow(row scanner) (messageRow, error) {
	var m messageRow
	err := row.Scan(&m.id, &m.conversationID, &m.senderID, &m.content, &m.createdAt, &m.editedAt, &m.deletedAt)
	return m, err
}

func scanAttachmentRow(rows pgx.Rows) (attachmentRow, error) {
	var a attachmentRow
	err := rows.Scan(&a.messageID, &a.ID, &a.URL, &a.MimeType, &a.Size, &a.Position)
	return a, err
}
