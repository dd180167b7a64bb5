package data

import "time"

// RuleBook represents one source publication of operating rules
// (e.g. the General & Subsidiary Rules of a zone). Several rule books
// may carry overlapping chapters; the merge policy lives in the service layer.
type RuleBook struct {
	InternalId int        `json:"-"`
	Id         string     `json:"id"`
	Code       string     `json:"code"`
	Title      string     `json:"title"`
	Chapters   []*Chapter `json:"chapters,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Chapter groups rules under an integer chapter number.
// Number is the sort key and the merge key across rule books.
type Chapter struct {
	InternalId int       `json:"-"`
	Id         string    `json:"id"`
	RuleBookId int       `json:"-"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Section    *string   `json:"section"` // optional grouping label (optional)
	Rules      []*Rule   `json:"rules"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Rule is a single numbered regulation entry. Number is the stable
// external identifier (e.g. "4.09") used for anchors and navigation;
// DisplayOrder controls in-chapter sequence, which is not the lexical
// order of Number since sub-rule labels live inside Content.
type Rule struct {
	InternalId   int       `json:"-"`
	Id           string    `json:"id"`
	ChapterId    int       `json:"-"`
	Number       string    `json:"number"`
	Title        string    `json:"title"`
	Content      string    `json:"content"` // opaque rich/HTML text
	DisplayOrder int       `json:"order"`
	WordCount    int       `json:"wordCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RuleUpdate carries the editable fields of a rule save, together with
// the audit inputs the edit flow requires before any write is issued.
type RuleUpdate struct {
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	SupportingDoc string        `json:"supportingDoc"`
	ChangeReason  string        `json:"changeReason"`
	DocType       string        `json:"docType"`
	UploadedFile  *UploadedFile `json:"uploadedFile,omitempty"`
}

// DocType constants for the supporting-document reference of a rule edit.
const (
	DocTypeUpload   = "UPLOAD"
	DocTypeCitation = "CITATION"
)
