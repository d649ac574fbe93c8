package domain

import "time"

const MaxTableauRows = 500

// TableauRow is a dated entry of a tableau timeline.
type TableauRow struct {
	ID        string
	Label     string
	Status    RowStatus
	Priority  RowPriority
	Emotion   *Emotion
	Note      string
	Date      *time.Time
	Position  int
	CreatedAt time.Time
}

type RowInput struct {
	Label    string
	Status   string
	Priority string
	Emotion  string
	Note     string
	Date     *time.Time
}

type Tableau struct {
	AggregateRoot

	id        string
	ownerID   string
	title     string
	rows      []TableauRow
	createdAt time.Time
	updatedAt time.Time
}

func NewTableau(ownerID, title string) (*Tableau, error) {
	if ownerID == "" {
		return nil, Invalid("owner id is required")
	}
	t, err := requireText("title", title, 100)
	if err != nil {
		return nil, err
	}
	at := Touch()
	tb := &Tableau{id: newID(), ownerID: ownerID, title: t, createdAt: at, updatedAt: at}
	tb.record(TableauCreated{EventBase: newEventBase(tb.id, at), OwnerID: ownerID, Title: t})
	return tb, nil
}

func ReconstituteTableau(id, ownerID, title string, rows []TableauRow, createdAt, updatedAt time.Time) *Tableau {
	rs := make([]TableauRow, len(rows))
	copy(rs, rows)
	sortByPosition(rs, func(r TableauRow) int { return r.Position })
	return &Tableau{id: id, ownerID: ownerID, title: title, rows: rs, createdAt: createdAt, updatedAt: updatedAt}
}

func (t *Tableau) ID() string           { return t.id }
func (t *Tableau) OwnerID() string      { return t.ownerID }
func (t *Tableau) Title() string        { return t.title }
func (t *Tableau) CreatedAt() time.Time { return t.createdAt }
func (t *Tableau) UpdatedAt() time.Time { return t.updatedAt }
func (t *Tableau) Rows() []TableauRow {
	out := make([]TableauRow, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Tableau) EnsureOwner(actorID string) error {
	if actorID != t.ownerID {
		return Forbidden("tableau belongs to another user")
	}
	return nil
}

func (t *Tableau) Rename(title string) error {
	v, err := requireText("title", title, 100)
	if err != nil {
		return err
	}
	t.title = v
	t.updatedAt = Touch()
	t.record(TableauRenamed{EventBase: newEventBase(t.id, t.updatedAt), Title: v})
	return nil
}

func (t *Tableau) AddRow(in RowInput) (TableauRow, error) {
	if len(t.rows) >= MaxTableauRows {
		return TableauRow{}, Conflict("a tableau accepts at most %d rows", MaxTableauRows)
	}
	row, err := buildRow(in)
	if err != nil {
		return TableauRow{}, err
	}
	row.ID = newID()
	row.Position = len(t.rows)
	row.CreatedAt = Touch()
	t.rows = append(t.rows, row)
	t.updatedAt = row.CreatedAt
	t.record(TableauRowAdded{EventBase: newEventBase(t.id, t.updatedAt), RowID: row.ID, Position: row.Position})
	return row, nil
}

// UpdateRow replaces the editable fields of a row, keeping its identity and position.
func (t *Tableau) UpdateRow(rowID string, in RowInput) error {
	idx := t.rowIndex(rowID)
	if idx < 0 {
		return NotFound("row %s not found", rowID)
	}
	row, err := buildRow(in)
	if err != nil {
		return err
	}
	current := t.rows[idx]
	row.ID, row.Position, row.CreatedAt = current.ID, current.Position, current.CreatedAt
	t.rows[idx] = row
	t.updatedAt = Touch()
	t.record(TableauRowUpdated{EventBase: newEventBase(t.id, t.updatedAt), RowID: rowID, Status: string(row.Status)})
	return nil
}

func (t *Tableau) RemoveRow(rowID string) error {
	idx := t.rowIndex(rowID)
	if idx < 0 {
		return NotFound("row %s not found", rowID)
	}
	t.rows = removeAt(t.rows, idx)
	renumber(t.rows, func(r *TableauRow, i int) { r.Position = i })
	t.updatedAt = Touch()
	t.record(TableauRowRemoved{EventBase: newEventBase(t.id, t.updatedAt), RowID: rowID})
	return nil
}

func (t *Tableau) MoveRow(rowID string, to int) error {
	from := t.rowIndex(rowID)
	if from < 0 {
		return NotFound("row %s not found", rowID)
	}
	t.rows = moveItem(t.rows, from, to)
	renumber(t.rows, func(r *TableauRow, i int) { r.Position = i })
	t.updatedAt = Touch()
	t.record(TableauRowMoved{EventBase: newEventBase(t.id, t.updatedAt), RowID: rowID, From: from, To: t.rowIndex(rowID)})
	return nil
}

func (t *Tableau) rowIndex(rowID string) int {
	return indexWhere(t.rows, func(r TableauRow) bool { return r.ID == rowID })
}

func buildRow(in RowInput) (TableauRow, error) {
	label, err := requireText("label", in.Label, 200)
	if err != nil {
		return TableauRow{}, err
	}
	status, err := NewRowStatus(in.Status)
	if err != nil {
		return TableauRow{}, err
	}
	priority, err := NewRowPriority(in.Priority)
	if err != nil {
		return TableauRow{}, err
	}
	note, err := optionalText("note", in.Note, 2000)
	if err != nil {
		return TableauRow{}, err
	}
	row := TableauRow{Label: label, Status: status, Priority: priority, Note: note, Date: in.Date}
	if in.Emotion != "" {
		e, err := NewEmotion(in.Emotion)
		if err != nil {
			return TableauRow{}, err
		}
		row.Emotion = &e
	}
	return row, nil
}
