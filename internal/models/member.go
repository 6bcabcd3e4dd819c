package models

// Member is one row of the validmember table. Members are shared across
// boards and de-duplicated by id at normalization time.
type Member struct {
	ID       string
	Name     string
	Username string
}

var memberColumns = []string{"member_id", "member_name", "member_username"}

// MemberTable materializes members as the validmember table.
func MemberTable(members []Member) Table {
	rows := make([][]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, []any{m.ID, m.Name, m.Username})
	}
	return Table{Name: TableMembers, Columns: memberColumns, Rows: rows}
}

// List is one row of the validlist table.
type List struct {
	ID      string
	Name    string
	BoardID string
	Closed  bool
}

var listColumns = []string{"list_id", "list_name", "board_id", "list_closed"}

// ListTable materializes lists as the validlist table.
func ListTable(lists []List) Table {
	rows := make([][]any, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []any{l.ID, l.Name, l.BoardID, l.Closed})
	}
	return Table{Name: TableLists, Columns: listColumns, Rows: rows}
}

// Label is one row of the validlabel table.
type Label struct {
	ID      string
	Name    string
	BoardID string
	Color   string
}

var labelColumns = []string{"label_id", "label_name", "board_id", "label_color"}

// LabelTable materializes labels as the validlabel table.
func LabelTable(labels []Label) Table {
	rows := make([][]any, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []any{l.ID, l.Name, l.BoardID, l.Color})
	}
	return Table{Name: TableLabels, Columns: labelColumns, Rows: rows}
}
