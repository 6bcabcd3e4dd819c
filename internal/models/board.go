package models

// Board is one row of the validboard table. SchemaName is nil for
// excluded boards; for included boards it is the schema-safe short name
// derived from the board name.
type Board struct {
	Name       string
	ID         string
	Closed     bool
	Included   bool
	Comment    bool
	SchemaName *string
}

var boardColumns = []string{
	"board_name", "board_id", "board_closed",
	"board_included", "board_comment", "schema_name",
}

// BoardTable materializes boards as the validboard table.
func BoardTable(boards []Board) Table {
	rows := make([][]any, 0, len(boards))
	for _, b := range boards {
		var schema any
		if b.SchemaName != nil {
			schema = *b.SchemaName
		}
		rows = append(rows, []any{
			b.Name, b.ID, b.Closed, b.Included, b.Comment, schema,
		})
	}
	return Table{Name: TableBoards, Columns: boardColumns, Rows: rows}
}
