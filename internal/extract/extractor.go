package extract

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/dmitrijs2005/trelloetl/internal/trello"
)

// Reporter receives per-board failure messages destined for the
// durable run log.
type Reporter func(ctx context.Context, msg string)

// Extractor runs the full extraction: board resolution, one bulk
// payload request per included board, per-card comment requests for
// comment-enabled boards, per-field option requests for list-type
// fields, then every normalizer.
type Extractor struct {
	api            API
	orgs           []Organization
	excludedBoards []string
	commentBoards  []string
	logger         logging.Logger
	report         Reporter
}

// NewExtractor wires an Extractor. report may be nil.
func NewExtractor(api API, orgs []Organization, excludedBoards, commentBoards []string, logger logging.Logger, report Reporter) *Extractor {
	if report == nil {
		report = func(context.Context, string) {}
	}
	return &Extractor{
		api:            api,
		orgs:           orgs,
		excludedBoards: excludedBoards,
		commentBoards:  commentBoards,
		logger:         logger,
		report:         report,
	}
}

// Run produces one full Dataset. A failed bulk request is reported and
// that board contributes no rows to any table; any other failure is
// fatal to the extraction.
func (e *Extractor) Run(ctx context.Context) (*models.Dataset, error) {
	boards, err := CollectBoards(ctx, e.api, e.orgs, e.excludedBoards, e.commentBoards)
	if err != nil {
		return nil, err
	}
	e.logger.Info(ctx, "boards collected", "count", len(boards))

	// One bulk request per included board. A board whose pull fails is
	// dropped from the run, not retried.
	var payloads []*trello.BoardPayload
	pulled := make(map[string]*trello.BoardPayload)
	for _, b := range boards {
		if !b.Included {
			continue
		}
		payload, err := e.api.BoardPayload(ctx, b.ID)
		if err != nil {
			e.logger.Error(ctx, "board pull failed", "board_id", b.ID, "error", err)
			e.report(ctx, fmt.Sprintf("ERROR: data pull for board %s failed: %v", b.ID, err))
			continue
		}
		payloads = append(payloads, payload)
		pulled[b.ID] = payload
	}

	cards, err := Cards(payloads)
	if err != nil {
		return nil, err
	}
	fieldValues, err := FieldValues(payloads)
	if err != nil {
		return nil, err
	}
	fieldDefs := FieldDefs(payloads)

	options, err := e.collectFieldOptions(ctx, fieldDefs)
	if err != nil {
		return nil, err
	}
	comments, err := e.collectComments(ctx, boards, pulled)
	if err != nil {
		return nil, err
	}

	return &models.Dataset{
		Boards:       boards,
		Members:      Members(payloads),
		Lists:        Lists(payloads),
		Labels:       Labels(payloads),
		Cards:        cards,
		Fields:       fieldDefs,
		FieldValues:  fieldValues,
		FieldOptions: options,
		Checklists:   Checklists(payloads),
		Comments:     comments,
	}, nil
}

// collectFieldOptions issues one request per list-type field; other
// field types have no enumerated options.
func (e *Extractor) collectFieldOptions(ctx context.Context, defs []models.CustomFieldDef) ([]models.FieldOption, error) {
	options := []models.FieldOption{}
	for _, def := range defs {
		if def.Type != models.FieldTypeList {
			continue
		}
		payload, err := e.api.FieldOptions(ctx, def.ID)
		if err != nil {
			return nil, fmt.Errorf("options for field %s: %w", def.ID, err)
		}
		options = append(options, FieldOptions(payload)...)
	}
	return options, nil
}

// collectComments issues one request per card, but only for boards
// explicitly flagged for comments; that is the dominant cost of a run
// and the reason comments are opt-in.
func (e *Extractor) collectComments(ctx context.Context, boards []models.Board, pulled map[string]*trello.BoardPayload) ([]models.Comment, error) {
	var sources []CardComments
	for _, b := range boards {
		if !b.Comment {
			continue
		}
		payload, ok := pulled[b.ID]
		if !ok {
			// bulk pull failed, board already dropped from the run
			continue
		}
		for _, c := range payload.Cards {
			actions, err := e.api.CardComments(ctx, c.ID)
			if err != nil {
				return nil, fmt.Errorf("comments for card %s: %w", c.ID, err)
			}
			sources = append(sources, CardComments{CardID: c.ID, Actions: actions})
		}
	}
	return Comments(sources)
}
