package models

// ChecklistRow is one row of the checklist table: the right-outer join
// of checklist items onto their checklist. A checklist with no items
// still produces one row, with every item field nil.
type ChecklistRow struct {
	ChecklistID   string
	ItemState     *string
	ItemID        *string
	ItemName      *string
	ItemMember    *string
	ChecklistName string
	CardID        string
	BoardID       string
}

var checklistColumns = []string{
	"checklist_id", "item_state", "item_id", "item_name",
	"item_member", "checklist_name", "card_id", "board_id",
}

// ChecklistTable materializes the joined checklist rows as the
// checklist table.
func ChecklistTable(rows []ChecklistRow) Table {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.ChecklistID,
			optional(r.ItemState),
			optional(r.ItemID),
			optional(r.ItemName),
			optional(r.ItemMember),
			r.ChecklistName,
			r.CardID,
			r.BoardID,
		})
	}
	return Table{Name: TableChecklists, Columns: checklistColumns, Rows: out}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
