package models

import (
	"strings"
	"time"
)

// Card is one row of the card table. Creation is derived from the card
// id prefix and is never taken from the source payload. LabelIDs and
// MemberIDs are multi-valued and stored comma-joined.
type Card struct {
	ID          string
	Creation    time.Time
	Name        string
	Description string
	BoardID     string
	ListID      string
	LastActive  time.Time
	LabelIDs    []string
	MemberIDs   []string
	Number      int
	ShortLink   string
	ShortURL    string
	Closed      bool
}

var cardColumns = []string{
	"card_id", "card_creation", "card_name", "card_description",
	"board_id", "list_id", "card_last_active", "label_id", "member_id",
	"card_number", "card_link", "card_url", "card_closed",
}

// CardTable materializes cards as the card table.
func CardTable(cards []Card) Table {
	rows := make([][]any, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []any{
			c.ID,
			c.Creation,
			c.Name,
			c.Description,
			c.BoardID,
			c.ListID,
			c.LastActive,
			strings.Join(c.LabelIDs, ","),
			strings.Join(c.MemberIDs, ","),
			c.Number,
			c.ShortLink,
			c.ShortURL,
			c.Closed,
		})
	}
	return Table{Name: TableCards, Columns: cardColumns, Rows: rows}
}

// Comment is one row of the comment table, identified by the
// (card, member, date) triple.
type Comment struct {
	CardID   string
	MemberID string
	Text     string
	Date     time.Time
}

var commentColumns = []string{"card_id", "member_id", "card_comment", "comment_date"}

// CommentTable materializes comments as the comment table.
func CommentTable(comments []Comment) Table {
	rows := make([][]any, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []any{c.CardID, c.MemberID, c.Text, c.Date})
	}
	return Table{Name: TableComments, Columns: commentColumns, Rows: rows}
}
