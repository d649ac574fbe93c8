package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/journal/domain"
)

// reactionTable describes a (subject, user, emoji) reaction table.
type reactionTable struct {
	table   string
	subject string
}

var (
	messageReactions = reactionTable{table: "message_reactions", subject: "message_id"}
	postReactions    = reactionTable{table: "post_reactions", subject: "post_id"}
)

type reactionRow struct {
	subjectID string
	domain.Reaction
}

func (t reactionTable) selectBySubjects() string {
	return `SELECT ` + t.subject + `, user_id, emoji, created_at FROM ` + t.table +
		` WHERE ` + t.subject + ` = ANY($1) ORDER BY created_at`
}

func (t reactionTable) load(ctx context.Context, q Querier, subjectIDs []string) (map[string][]reactionRow, error) {
	return loadChildren(ctx, q, t.selectBySubjects(), subjectIDs, scanReactionRow,
		func(r reactionRow) string { return r.subjectID })
}

// writeDiff persists only what changed since the set was loaded: one insert batch for the
// added pairs, one delete for the removed pairs.
func (t reactionTable) writeDiff(ctx context.Context, q Querier, subjectID string, set *domain.ReactionSet) error {
	if set == nil || !set.HasChanges() {
		return nil
	}

	added := newBulkInsert(t.table, t.subject, "user_id", "emoji", "created_at").onConflict("ON CONFLICT DO NOTHING")
	for _, r := range set.NewItems() {
		added.add(subjectID, r.UserID, string(r.Emoji), r.CreatedAt)
	}
	if err := added.exec(ctx, q); err != nil {
		return err
	}

	removed := set.RemovedItems()
	if len(removed) == 0 {
		return nil
	}
	users := make([]string, len(removed))
	emojis := make([]string, len(removed))
	for i, r := range removed {
		users[i], emojis[i] = r.UserID, string(r.Emoji)
	}
	query := `DELETE FROM ` + t.table + ` WHERE ` + t.subject + ` = $1
	AND (user_id, emoji) IN (SELECT * FROM unnest($2::text[], $3::text[]))`
	_, err := q.Exec(ctx, query, subjectID, users, emojis)
	return err
}

func scanReactionRow(rows pgx.Rows) (reactionRow, error) {
	var (
		r         reactionRow
		emoji     string
		createdAt time.Time
	)
	if err := rows.Scan(&r.subjectID, &r.UserID, &emoji, &createdAt); err != nil {
		return r, err
	}
	r.Emoji = domain.Emoji(emoji)
	r.CreatedAt = createdAt
	return r, nil
}

func reactionsOf(rows []reactionRow) []domain.Reaction {
	out := make([]domain.Reaction, len(rows))
	for i, r := range rows {
		out[i] = r.Reaction
	}
	return out
}
