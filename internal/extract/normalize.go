package extract

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/dmitrijs2005/trelloetl/internal/trello"
)

// Pure normalizers: each maps the bulk board payloads onto one flat
// table. A board with zero items of a kind simply contributes nothing.

// CardCreated derives a card's creation date from its id: the first 8
// hex characters are the Unix timestamp of the moment the card was
// made. Only the prefix matters; the rest of the id is ignored.
func CardCreated(cardID string) (time.Time, error) {
	if len(cardID) < 8 {
		return time.Time{}, fmt.Errorf("card id %q too short", cardID)
	}
	secs, err := strconv.ParseInt(cardID[:8], 16, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("card id %q: %w", cardID, err)
	}
	return time.Unix(secs, 0).UTC().Truncate(24 * time.Hour), nil
}

// dateOnly parses a Trello timestamp and drops the time of day.
func dateOnly(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Members flattens board members, de-duplicated by id across boards;
// the first occurrence wins.
func Members(payloads []*trello.BoardPayload) []models.Member {
	seen := make(map[string]bool)
	members := []models.Member{}
	for _, p := range payloads {
		for _, m := range p.Members {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			members = append(members, models.Member{
				ID:       m.ID,
				Name:     m.FullName,
				Username: m.Username,
			})
		}
	}
	return members
}

// Lists flattens board lists.
func Lists(payloads []*trello.BoardPayload) []models.List {
	lists := []models.List{}
	for _, p := range payloads {
		for _, l := range p.Lists {
			lists = append(lists, models.List{
				ID:      l.ID,
				Name:    l.Name,
				BoardID: l.IDBoard,
				Closed:  l.Closed,
			})
		}
	}
	return lists
}

// Labels flattens board labels.
func Labels(payloads []*trello.BoardPayload) []models.Label {
	labels := []models.Label{}
	for _, p := range payloads {
		for _, l := range p.Labels {
			labels = append(labels, models.Label{
				ID:      l.ID,
				Name:    l.Name,
				BoardID: l.IDBoard,
				Color:   l.Color,
			})
		}
	}
	return labels
}

// Cards flattens cards, deriving the creation date from the id and
// reducing the last-activity timestamp to a calendar date.
func Cards(payloads []*trello.BoardPayload) ([]models.Card, error) {
	cards := []models.Card{}
	for _, p := range payloads {
		for _, c := range p.Cards {
			created, err := CardCreated(c.ID)
			if err != nil {
				return nil, err
			}
			lastActive, err := dateOnly(c.DateLastActivity)
			if err != nil {
				return nil, fmt.Errorf("card %s: %w", c.ID, err)
			}
			cards = append(cards, models.Card{
				ID:          c.ID,
				Creation:    created,
				Name:        c.Name,
				Description: c.Desc,
				BoardID:     c.IDBoard,
				ListID:      c.IDList,
				LastActive:  lastActive,
				LabelIDs:    c.IDLabels,
				MemberIDs:   c.IDMembers,
				Number:      c.IDShort,
				ShortLink:   c.ShortLink,
				ShortURL:    c.ShortURL,
				Closed:      c.Closed,
			})
		}
	}
	return cards, nil
}

// FieldDefs flattens custom-field definitions.
func FieldDefs(payloads []*trello.BoardPayload) []models.CustomFieldDef {
	defs := []models.CustomFieldDef{}
	for _, p := range payloads {
		for _, f := range p.CustomFields {
			defs = append(defs, models.CustomFieldDef{
				ID:      f.ID,
				Name:    f.Name,
				BoardID: f.IDModel,
				Type:    f.Type,
			})
		}
	}
	return defs
}

// FieldValues flattens card-level custom-field values into the tagged
// union, deciding the kind once from the payload shape. A value object
// carrying none of the four slots is invalid source data.
func FieldValues(payloads []*trello.BoardPayload) ([]models.CardFieldValue, error) {
	values := []models.CardFieldValue{}
	for _, p := range payloads {
		for _, c := range p.Cards {
			for _, item := range c.CustomFieldItems {
				value, err := fieldValue(item)
				if err != nil {
					return nil, fmt.Errorf("card %s: %w", c.ID, err)
				}
				values = append(values, value)
			}
		}
	}
	return values, nil
}

func fieldValue(item trello.CustomFieldItem) (models.CardFieldValue, error) {
	value := models.CardFieldValue{
		FieldID: item.IDCustomField,
		CardID:  item.IDModel,
	}
	switch {
	case item.IDValue != nil:
		value.Kind = models.FieldValueOption
		value.OptionID = *item.IDValue
	case item.Value != nil && item.Value.Date != nil:
		date, err := dateOnly(*item.Value.Date)
		if err != nil {
			return value, fmt.Errorf("field %s: %w", item.IDCustomField, err)
		}
		value.Kind = models.FieldValueDate
		value.Date = date
	case item.Value != nil && item.Value.Text != nil:
		value.Kind = models.FieldValueText
		value.Text = *item.Value.Text
	case item.Value != nil && item.Value.Checked != nil:
		checked, err := strconv.ParseBool(*item.Value.Checked)
		if err != nil {
			return value, fmt.Errorf("field %s: bad checked value: %w", item.IDCustomField, err)
		}
		value.Kind = models.FieldValueChecked
		value.Checked = checked
	default:
		return value, fmt.Errorf("field %s on card %s: no value slot present", item.IDCustomField, item.IDModel)
	}
	return value, nil
}

// FieldOptions flattens the option list of one list-type field.
func FieldOptions(options []trello.FieldOptionPayload) []models.FieldOption {
	out := []models.FieldOption{}
	for _, o := range options {
		out = append(out, models.FieldOption{
			ID:    o.ID,
			Value: o.Value.Text,
			Color: o.Color,
		})
	}
	return out
}

// Checklists builds checklist rows and item rows independently, then
// right-outer-joins the items onto the checklists: every checklist
// appears at least once, and one with no items carries nil item fields.
func Checklists(payloads []*trello.BoardPayload) []models.ChecklistRow {
	rows := []models.ChecklistRow{}
	for _, p := range payloads {
		for _, cl := range p.Checklists {
			if len(cl.CheckItems) == 0 {
				rows = append(rows, models.ChecklistRow{
					ChecklistID:   cl.ID,
					ChecklistName: cl.Name,
					CardID:        cl.IDCard,
					BoardID:       cl.IDBoard,
				})
				continue
			}
			for _, item := range cl.CheckItems {
				state, id, name := item.State, item.ID, item.Name
				rows = append(rows, models.ChecklistRow{
					ChecklistID:   cl.ID,
					ItemState:     &state,
					ItemID:        &id,
					ItemName:      &name,
					ItemMember:    item.IDMember,
					ChecklistName: cl.Name,
					CardID:        cl.IDCard,
					BoardID:       cl.IDBoard,
				})
			}
		}
	}
	return rows
}

// CardComments pairs a card with its raw comment actions.
type CardComments struct {
	CardID  string
	Actions []trello.CommentAction
}

// Comments flattens comment actions, reducing the action timestamp to
// a calendar date.
func Comments(sources []CardComments) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, src := range sources {
		for _, a := range src.Actions {
			date, err := dateOnly(a.Date)
			if err != nil {
				return nil, fmt.Errorf("comment on card %s: %w", src.CardID, err)
			}
			comments = append(comments, models.Comment{
				CardID:   src.CardID,
				MemberID: a.IDMemberCreator,
				Text:     a.Data.Text,
				Date:     date,
			})
		}
	}
	return comments, nil
}
