// Package extract resolves the set of boards to process, pulls the
// consolidated payload for each one and normalizes the nested payloads
// into the flat destination tables.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/dmitrijs2005/trelloetl/internal/trello"
)

// API is the subset of the Trello client the extractor needs.
type API interface {
	OrganizationBoards(ctx context.Context, orgID string) ([]trello.BoardSummary, error)
	BoardPayload(ctx context.Context, boardID string) (*trello.BoardPayload, error)
	CardComments(ctx context.Context, cardID string) ([]trello.CommentAction, error)
	FieldOptions(ctx context.Context, fieldID string) ([]trello.FieldOptionPayload, error)
}

// Organization identifies one Trello organization and whether its
// boards take part in the run.
type Organization struct {
	ID      string
	Name    string
	Include bool
}

// SchemaName derives the schema-safe short name of a board: ASCII
// letters only, lowercased, truncated to 12 characters. Pure; the same
// board name always yields the same result.
func SchemaName(boardName string) string {
	var b strings.Builder
	for _, r := range boardName {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
		if b.Len() == 12 {
			break
		}
	}
	return b.String()
}

// CollectBoards fetches the board list of every included organization
// and tags each board for the run:
//
//   - excluded boards get included=false, comment=false and no schema name
//   - comment-enabled boards get included=true, comment=true
//   - every other board gets included=true, comment=false
//
// Organizations with Include=false contribute no rows.
func CollectBoards(ctx context.Context, api API, orgs []Organization, excluded, commentEnabled []string) ([]models.Board, error) {
	isExcluded := toSet(excluded)
	hasComments := toSet(commentEnabled)

	var boards []models.Board
	for _, org := range orgs {
		if !org.Include {
			continue
		}
		summaries, err := api.OrganizationBoards(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("collect boards for organization %s: %w", org.ID, err)
		}
		for _, s := range summaries {
			board := models.Board{
				Name:   s.Name,
				ID:     s.ID,
				Closed: s.Closed,
			}
			if !isExcluded[s.ID] {
				schema := SchemaName(s.Name)
				board.Included = true
				board.Comment = hasComments[s.ID]
				board.SchemaName = &schema
			}
			boards = append(boards, board)
		}
	}
	return boards, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
