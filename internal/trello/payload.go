package trello

// Wire structs for the subset of the Trello API the pipeline reads.
// Field tags follow Trello's JSON names exactly.

// BoardSummary is one entry of an organization's board list.
type BoardSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// BoardPayload is the consolidated nested payload of one board.
type BoardPayload struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Cards        []CardPayload        `json:"cards"`
	Lists        []ListPayload        `json:"lists"`
	Labels       []LabelPayload       `json:"labels"`
	Members      []MemberPayload      `json:"members"`
	Checklists   []ChecklistPayload   `json:"checklists"`
	CustomFields []CustomFieldPayload `json:"customFields"`
}

// CardPayload is one card as embedded in the bulk board payload.
type CardPayload struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Desc             string            `json:"desc"`
	IDBoard          string            `json:"idBoard"`
	IDList           string            `json:"idList"`
	DateLastActivity string            `json:"dateLastActivity"`
	IDLabels         []string          `json:"idLabels"`
	IDMembers        []string          `json:"idMembers"`
	IDShort          int               `json:"idShort"`
	ShortLink        string            `json:"shortLink"`
	ShortURL         string            `json:"shortUrl"`
	Closed           bool              `json:"closed"`
	CustomFieldItems []CustomFieldItem `json:"customFieldItems"`
}

// ListPayload is one list of a board.
type ListPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Closed  bool   `json:"closed"`
}

// LabelPayload is one label of a board.
type LabelPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Color   string `json:"color"`
}

// MemberPayload is one member of a board.
type MemberPayload struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// ChecklistPayload is one checklist with its embedded items.
type ChecklistPayload struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	IDCard     string             `json:"idCard"`
	IDBoard    string             `json:"idBoard"`
	CheckItems []CheckItemPayload `json:"checkItems"`
}

// CheckItemPayload is one line of a checklist. IDMember is null when
// the item has no assignee.
type CheckItemPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	IDChecklist string  `json:"idChecklist"`
	IDMember    *string `json:"idMember"`
}

// CustomFieldPayload is one custom-field definition of a board. The
// owning board arrives as idModel.
type CustomFieldPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDModel string `json:"idModel"`
	Type    string `json:"type"`
}

// CustomFieldItem is a card-level custom-field value. The encoding is
// polymorphic: list-type fields carry idValue, every other type carries
// a value object with exactly one of date, text or checked set.
// Pointer fields preserve key presence.
type CustomFieldItem struct {
	IDCustomField string                `json:"idCustomField"`
	IDModel       string                `json:"idModel"`
	IDValue       *string               `json:"idValue"`
	Value         *CustomFieldItemValue `json:"value"`
}

// CustomFieldItemValue is the typed value object of a CustomFieldItem.
// Trello encodes checked as the string "true"/"false".
type CustomFieldItemValue struct {
	Date    *string `json:"date"`
	Text    *string `json:"text"`
	Checked *string `json:"checked"`
}

// CommentAction is one commentCard action of a card.
type CommentAction struct {
	IDMemberCreator string `json:"idMemberCreator"`
	Date            string `json:"date"`
	Data            struct {
		Text string `json:"text"`
	} `json:"data"`
}

// FieldOptionPayload is one enumerated option of a list-type custom
// field. The option endpoint names its id "_id", unlike every other
// Trello resource.
type FieldOptionPayload struct {
	ID    string `json:"_id"`
	Value struct {
		Text string `json:"text"`
	} `json:"value"`
	Color string `json:"color"`
}
