// Package models defines the flat record types the pipeline produces,
// one per destination table, plus the generic Table shape the staging
// and load stages operate on.
//
// Every record is keyed by the external stable identifier of the source
// entity and is rebuilt from scratch on each run; nothing here is
// mutated after normalization. Nullable columns are pointers, and a nil
// pointer is the only missing-value representation anywhere in the
// pipeline.
package models

// Destination table names, matching the database schema.
const (
	TableBoards       = "validboard"
	TableMembers      = "validmember"
	TableLists        = "validlist"
	TableLabels       = "validlabel"
	TableCards        = "card"
	TableFields       = "validfield"
	TableFieldValues  = "field"
	TableFieldOptions = "validfieldoption"
	TableChecklists   = "checklist"
	TableComments     = "comment"
)

// TableNames lists all destination tables in load order.
var TableNames = []string{
	TableBoards,
	TableMembers,
	TableLists,
	TableLabels,
	TableCards,
	TableFields,
	TableFieldValues,
	TableFieldOptions,
	TableChecklists,
	TableComments,
}

// Table is a flat, column-ordered snapshot of one destination table.
// Cell values are nil (null), string, bool, int or time.Time; the
// staging codec is responsible for turning them into text and back.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// DateOnly is the calendar-date layout used for every DATE column.
const DateOnly = "2006-01-02"

// Dataset holds one full extraction: every table the pipeline produces
// for a single run.
type Dataset struct {
	Boards       []Board
	Members      []Member
	Lists        []List
	Labels       []Label
	Cards        []Card
	Fields       []CustomFieldDef
	FieldValues  []CardFieldValue
	FieldOptions []FieldOption
	Checklists   []ChecklistRow
	Comments     []Comment
}

// Tables materializes the dataset as the ten destination tables in
// load order.
func (d *Dataset) Tables() []Table {
	return []Table{
		BoardTable(d.Boards),
		MemberTable(d.Members),
		ListTable(d.Lists),
		LabelTable(d.Labels),
		CardTable(d.Cards),
		FieldDefTable(d.Fields),
		FieldValueTable(d.FieldValues),
		FieldOptionTable(d.FieldOptions),
		ChecklistTable(d.Checklists),
		CommentTable(d.Comments),
	}
}
