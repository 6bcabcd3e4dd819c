package models

import "time"

// FieldTypeList is the custom-field type whose values reference an
// enumerated option; only fields of this type have option rows.
const FieldTypeList = "list"

// CustomFieldDef is one row of the validfield table: a custom-field
// definition attached to a board.
type CustomFieldDef struct {
	ID      string
	Name    string
	BoardID string
	Type    string
}

var fieldDefColumns = []string{"field_id", "field_name", "board_id", "field_type"}

// FieldDefTable materializes field definitions as the validfield table.
func FieldDefTable(defs []CustomFieldDef) Table {
	rows := make([][]any, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []any{d.ID, d.Name, d.BoardID, d.Type})
	}
	return Table{Name: TableFields, Columns: fieldDefColumns, Rows: rows}
}

// FieldValueKind tags which of the four mutually exclusive value slots
// a CardFieldValue carries. The kind is decided once, at normalization
// time; downstream code switches on it instead of re-probing the raw
// payload shape.
type FieldValueKind int

const (
	// FieldValueOption references an enumerated option by id.
	FieldValueOption FieldValueKind = iota
	// FieldValueDate carries a calendar date.
	FieldValueDate
	// FieldValueText carries free text.
	FieldValueText
	// FieldValueChecked carries a checkbox state.
	FieldValueChecked
)

// CardFieldValue is one row of the field table: the value a card holds
// for one custom field, identified by the (field, card) pair. Exactly
// one slot is populated, selected by Kind.
type CardFieldValue struct {
	FieldID string
	CardID  string
	Kind    FieldValueKind

	OptionID string
	Date     time.Time
	Text     string
	Checked  bool
}

var fieldValueColumns = []string{
	"field_id", "card_id", "field_text",
	"field_value_id", "field_date", "field_checked",
}

// FieldValueTable materializes card field values as the field table.
// Per row, exactly the column matching Kind is non-null.
func FieldValueTable(values []CardFieldValue) Table {
	rows := make([][]any, 0, len(values))
	for _, v := range values {
		var text, optionID, date, checked any
		switch v.Kind {
		case FieldValueOption:
			optionID = v.OptionID
		case FieldValueDate:
			date = v.Date
		case FieldValueText:
			text = v.Text
		case FieldValueChecked:
			checked = v.Checked
		}
		rows = append(rows, []any{v.FieldID, v.CardID, text, optionID, date, checked})
	}
	return Table{Name: TableFieldValues, Columns: fieldValueColumns, Rows: rows}
}

// FieldOption is one row of the validfieldoption table: an enumerated
// option of a list-type custom field. The card-level value id joins to
// the option id directly.
type FieldOption struct {
	ID    string
	Value string
	Color string
}

var fieldOptionColumns = []string{
	"field_option_id", "field_option_value", "field_option_color",
}

// FieldOptionTable materializes options as the validfieldoption table.
func FieldOptionTable(options []FieldOption) Table {
	rows := make([][]any, 0, len(options))
	for _, o := range options {
		rows = append(rows, []any{o.ID, o.Value, o.Color})
	}
	return Table{Name: TableFieldOptions, Columns: fieldOptionColumns, Rows: rows}
}
