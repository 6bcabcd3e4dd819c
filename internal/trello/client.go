// Package trello is a minimal authenticated client for the Trello REST
// API, covering exactly the endpoints the extraction pipeline consumes:
// organization board lists, the bulk nested board payload, per-card
// comment actions and per-field option lists.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the production Trello API root.
const DefaultBaseURL = "https://api.trello.com/1"

// bulkBoardQuery requests everything the normalizers need for one board
// in a single call: lists, members, labels, cards (with descriptions
// and custom-field items), checklists and custom-field definitions.
// Comments are not available through this endpoint.
const bulkBoardQuery = "fields=name" +
	"&checklists=all" +
	"&members=all&member_fields=id,fullName,username,idBoard" +
	"&labels=all&label_fields=id,name,idBoard,color" +
	"&lists=all&list_fields=name,closed,idBoard" +
	"&cards=all&card_fields=name,idBoard,idList,idLabels,idMembers,closed,dateLastActivity,idShort,shortLink,shortUrl,desc" +
	"&customFields=true&card_customFieldItems=true"

// Client issues authenticated GET requests against the Trello API.
// The key and token are attached to every call as query parameters.
type Client struct {
	key     string
	token   string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient constructs a Client for the given credentials.
func NewClient(key, token string, opts ...Option) *Client {
	c := &Client{
		key:     key,
		token:   token,
		baseURL: DefaultBaseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches path?rawQuery with credentials attached and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, path string, rawQuery string, out any) error {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("trello: bad query: %w", err)
	}
	q.Set("key", c.key)
	q.Set("token", c.token)

	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("trello: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trello: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("trello: GET %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("trello: decode %s: %w", path, err)
	}
	return nil
}

// OrganizationBoards returns the id, name and closed flag of every
// board in an organization.
func (c *Client) OrganizationBoards(ctx context.Context, orgID string) ([]BoardSummary, error) {
	var boards []BoardSummary
	err := c.get(ctx, "/organizations/"+orgID+"/boards", "fields=id,name,closed", &boards)
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// BoardPayload returns the consolidated nested payload for one board.
func (c *Client) BoardPayload(ctx context.Context, boardID string) (*BoardPayload, error) {
	var payload BoardPayload
	if err := c.get(ctx, "/boards/"+boardID+"/", bulkBoardQuery, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CardComments returns the comment actions of one card. This is the
// only way to obtain comments; the bulk board payload excludes them.
func (c *Client) CardComments(ctx context.Context, cardID string) ([]CommentAction, error) {
	var actions []CommentAction
	err := c.get(ctx, "/cards/"+cardID+"/actions", "filter=commentCard", &actions)
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// FieldOptions returns the enumerated options of a list-type custom
// field.
func (c *Client) FieldOptions(ctx context.Context, fieldID string) ([]FieldOptionPayload, error) {
	var options []FieldOptionPayload
	err := c.get(ctx, "/customFields/"+fieldID+"/options", "", &options)
	if err != nil {
		return nil, err
	}
	return options, nil
}
