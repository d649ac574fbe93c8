package domain

import "time"

const (
	MaxBoardColumns = 20
	MaxColumnCards  = 200
)

// Card is a task inside a column.
type Card struct {
	ID          string
	Title       string
	Description string
	DueAt       *time.Time
	Position    int
	CreatedAt   time.Time
}

// Column is an ordered lane of cards.
type Column struct {
	ID       string
	Title    string
	Color    HexColor
	Position int
	Cards    []Card
}

type CardInput struct {
	Title       string
	Description string
	DueAt       *time.Time
}

// Board is a kanban board. Column positions and card positions inside each column
// are always contiguous from zero.
type Board struct {
	AggregateRoot

	id        string
	ownerID   string
	title     string
	columns   []Column
	createdAt time.Time
	updatedAt time.Time
}

var defaultColumns = []string{"To do", "Doing", "Done"}

// NewBoard creates a board seeded with the default columns when none are given.
func NewBoard(ownerID, title string, columnTitles []string) (*Board, error) {
	if ownerID == "" {
		return nil, Invalid("owner id is required")
	}
	t, err := requireText("title", title, 100)
	if err != nil {
		return nil, err
	}
	if len(columnTitles) == 0 {
		columnTitles = defaultColumns
	}
	if len(columnTitles) > MaxBoardColumns {
		return nil, Invalid("a board accepts at most %d columns", MaxBoardColumns)
	}
	at := Touch()
	b := &Board{id: newID(), ownerID: ownerID, title: t, createdAt: at, updatedAt: at}
	for i, raw := range columnTitles {
		ct, err := requireText("column title", raw, 60)
		if err != nil {
			return nil, err
		}
		b.columns = append(b.columns, Column{ID: newID(), Title: ct, Position: i})
	}
	b.record(BoardCreated{EventBase: newEventBase(b.id, at), OwnerID: ownerID, Title: t})
	return b, nil
}

func ReconstituteBoard(id, ownerID, title string, columns []Column, createdAt, updatedAt time.Time) *Board {
	cols := make([]Column, len(columns))
	for i, c := range columns {
		cards := make([]Card, len(c.Cards))
		copy(cards, c.Cards)
		sortByPosition(cards, func(card Card) int { return card.Position })
		c.Cards = cards
		cols[i] = c
	}
	sortByPosition(cols, func(c Column) int { return c.Position })
	return &Board{id: id, ownerID: ownerID, title: title, columns: cols, createdAt: createdAt, updatedAt: updatedAt}
}

func (b *Board) ID() string           { return b.id }
func (b *Board) OwnerID() string      { return b.ownerID }
func (b *Board) Title() string        { return b.title }
func (b *Board) CreatedAt() time.Time { return b.createdAt }
func (b *Board) UpdatedAt() time.Time { return b.updatedAt }

// Columns returns a deep copy of the columns and their cards.
func (b *Board) Columns() []Column {
	out := make([]Column, len(b.columns))
	for i, c := range b.columns {
		cards := make([]Card, len(c.Cards))
		copy(cards, c.Cards)
		c.Cards = cards
		out[i] = c
	}
	return out
}

func (b *Board) EnsureOwner(actorID string) error {
	if actorID != b.ownerID {
		return Forbidden("board belongs to another user")
	}
	return nil
}

func (b *Board) Rename(title string) error {
	t, err := requireText("title", title, 100)
	if err != nil {
		return err
	}
	b.title = t
	b.updatedAt = Touch()
	b.record(BoardRenamed{EventBase: newEventBase(b.id, b.updatedAt), Title: t})
	return nil
}

func (b *Board) AddColumn(title, color string) (Column, error) {
	if len(b.columns) >= MaxBoardColumns {
		return Column{}, Conflict("a board accepts at most %d columns", MaxBoardColumns)
	}
	t, err := requireText("column title", title, 60)
	if err != nil {
		return Column{}, err
	}
	col := Column{ID: newID(), Title: t, Position: len(b.columns)}
	if color != "" {
		hc, err := NewHexColor(color)
		if err != nil {
			return Column{}, err
		}
		col.Color = hc
	}
	b.columns = append(b.columns, col)
	b.updatedAt = Touch()
	b.record(BoardColumnAdded{EventBase: newEventBase(b.id, b.updatedAt), ColumnID: col.ID, Position: col.Position})
	return col, nil
}

// RemoveColumn drops the column with its cards and renumbers the remaining columns.
func (b *Board) RemoveColumn(columnID string) error {
	idx := b.columnIndex(columnID)
	if idx < 0 {
		return NotFound("column %s not found", columnID)
	}
	dropped := len(b.columns[idx].Cards)
	b.columns = removeAt(b.columns, idx)
	renumber(b.columns, func(c *Column, i int) { c.Position = i })
	b.updatedAt = Touch()
	b.record(BoardColumnRemoved{EventBase: newEventBase(b.id, b.updatedAt), ColumnID: columnID, CardsDropped: dropped})
	return nil
}

func (b *Board) RenameColumn(columnID, title, color string) error {
	idx := b.columnIndex(columnID)
	if idx < 0 {
		return NotFound("column %s not found", columnID)
	}
	t, err := requireText("column title", title, 60)
	if err != nil {
		return err
	}
	var hc HexColor
	if color != "" {
		if hc, err = NewHexColor(color); err != nil {
			return err
		}
	}
	b.columns[idx].Title, b.columns[idx].Color = t, hc
	b.updatedAt = Touch()
	b.record(BoardColumnRenamed{EventBase: newEventBase(b.id, b.updatedAt), ColumnID: columnID, Title: t})
	return nil
}

func (b *Board) MoveColumn(columnID string, to int) error {
	from := b.columnIndex(columnID)
	if from < 0 {
		return NotFound("column %s not found", columnID)
	}
	b.columns = moveItem(b.columns, from, to)
	renumber(b.columns, func(c *Column, i int) { c.Position = i })
	b.updatedAt = Touch()
	b.record(BoardColumnMoved{EventBase: newEventBase(b.id, b.updatedAt), ColumnID: columnID, From: from, To: b.columnIndex(columnID)})
	return nil
}

func (b *Board) AddCard(columnID string, in CardInput) (Card, error) {
	idx := b.columnIndex(columnID)
	if idx < 0 {
		return Card{}, NotFound("column %s not found", columnID)
	}
	col := &b.columns[idx]
	if len(col.Cards) >= MaxColumnCards {
		return Card{}, Conflict("a column accepts at most %d cards", MaxColumnCards)
	}
	t, err := requireText("card title", in.Title, 200)
	if err != nil {
		return Card{}, err
	}
	d, err := optionalText("card description", in.Description, 2000)
	if err != nil {
		return Card{}, err
	}
	at := Touch()
	card := Card{ID: newID(), Title: t, Description: d, DueAt: in.DueAt, Position: len(col.Cards), CreatedAt: at}
	col.Cards = append(col.Cards, card)
	b.updatedAt = at
	b.record(BoardCardAdded{EventBase: newEventBase(b.id, at), ColumnID: columnID, CardID: card.ID, Position: card.Position})
	return card, nil
}

// MoveCard relocates a card to position in the target column, renumbering both columns.
func (b *Board) MoveCard(cardID, toColumnID string, position int) error {
	fromIdx, cardIdx := b.findCard(cardID)
	if fromIdx < 0 {
		return NotFound("card %s not found", cardID)
	}
	toIdx := b.columnIndex(toColumnID)
	if toIdx < 0 {
		return NotFound("column %s not found", toColumnID)
	}
	if fromIdx != toIdx && len(b.columns[toIdx].Cards) >= MaxColumnCards {
		return Conflict("a column accepts at most %d cards", MaxColumnCards)
	}

	fromID := b.columns[fromIdx].ID
	card := b.columns[fromIdx].Cards[cardIdx]
	b.columns[fromIdx].Cards = removeAt(b.columns[fromIdx].Cards, cardIdx)
	if position < 0 {
		position = 0
	}
	if position > len(b.columns[toIdx].Cards) {
		position = len(b.columns[toIdx].Cards)
	}
	b.columns[toIdx].Cards = insertAt(b.columns[toIdx].Cards, position, card)
	renumber(b.columns[fromIdx].Cards, func(c *Card, i int) { c.Position = i })
	renumber(b.columns[toIdx].Cards, func(c *Card, i int) { c.Position = i })

	b.updatedAt = Touch()
	b.record(BoardCardMoved{
		EventBase:    newEventBase(b.id, b.updatedAt),
		CardID:       cardID,
		FromColumnID: fromID,
		ToColumnID:   toColumnID,
		Position:     position,
	})
	return nil
}

func (b *Board) RemoveCard(cardID string) error {
	colIdx, cardIdx := b.findCard(cardID)
	if colIdx < 0 {
		return NotFound("card %s not found", cardID)
	}
	col := &b.columns[colIdx]
	col.Cards = removeAt(col.Cards, cardIdx)
	renumber(col.Cards, func(c *Card, i int) { c.Position = i })
	b.updatedAt = Touch()
	b.record(BoardCardRemoved{EventBase: newEventBase(b.id, b.updatedAt), ColumnID: col.ID, CardID: cardID})
	return nil
}

func (b *Board) columnIndex(columnID string) int {
	return indexWhere(b.columns, func(c Column) bool { return c.ID == columnID })
}

func (b *Board) findCard(cardID string) (int, int) {
	for ci, col := range b.columns {
		for k, card := range col.Cards {
			if card.ID == cardID {
				return ci, k
			}
		}
	}
	return -1, -1
}
