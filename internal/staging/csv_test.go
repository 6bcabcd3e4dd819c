package staging

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	table := models.Table{
		Name:    models.TableChecklists,
		Columns: []string{"checklist_id", "item_state", "item_id", "item_name", "item_member", "checklist_name", "card_id", "board_id"},
		Rows: [][]any{
			{"CL1", "complete", "I1", "step one", "M1", "Todo", "C1", "B1"},
			{"CL2", nil, nil, nil, nil, "Empty", "C2", "B1"},
		},
	}

	data, err := EncodeTable(table)
	require.NoError(t, err)

	got, err := DecodeTable(models.TableChecklists, data)
	require.NoError(t, err)

	assert.Equal(t, table.Columns, got.Columns)
	require.Len(t, got.Rows, len(table.Rows))

	// null cells come back as nil, never as a sentinel string
	assert.Equal(t, "CL2", got.Rows[1][0])
	assert.Nil(t, got.Rows[1][1])
	assert.Nil(t, got.Rows[1][4])
	assert.Equal(t, "Empty", got.Rows[1][5])
}

func TestEncodeTable_CellTypes(t *testing.T) {
	table := models.Table{
		Name:    models.TableCards,
		Columns: []string{"card_id", "card_creation", "card_number", "card_closed", "schema_name"},
		Rows: [][]any{
			{"C1", time.Date(2020, time.July, 24, 0, 0, 0, 0, time.UTC), 42, true, nil},
		},
	}

	data, err := EncodeTable(table)
	require.NoError(t, err)
	assert.Equal(t,
		"card_id,card_creation,card_number,card_closed,schema_name\nC1,2020-07-24,42,true,\n",
		string(data))
}

func TestEncodeTable_RowWidthMismatch(t *testing.T) {
	table := models.Table{
		Name:    models.TableMembers,
		Columns: []string{"member_id", "member_name"},
		Rows:    [][]any{{"M1"}},
	}
	_, err := EncodeTable(table)
	require.Error(t, err)
}

func TestDecodeTable_EmptyTableKeepsHeader(t *testing.T) {
	table := models.Table{
		Name:    models.TableComments,
		Columns: []string{"card_id", "member_id", "card_comment", "comment_date"},
	}

	data, err := EncodeTable(table)
	require.NoError(t, err)

	got, err := DecodeTable(models.TableComments, data)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, got.Columns)
	assert.Empty(t, got.Rows)
}

func TestDecodeTable_MissingHeader(t *testing.T) {
	_, err := DecodeTable(models.TableComments, nil)
	require.Error(t, err)
}

func TestEncodeTable_QuotedContentSurvives(t *testing.T) {
	table := models.Table{
		Name:    models.TableComments,
		Columns: []string{"card_id", "card_comment"},
		Rows: [][]any{
			{"C1", "line one\nline \"two\", with comma"},
		},
	}

	data, err := EncodeTable(table)
	require.NoError(t, err)

	got, err := DecodeTable(models.TableComments, data)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "line one\nline \"two\", with comma", got.Rows[0][1])
}
