package data

import "time"

// Amendment is one audit-trail entry for a rule edit: the before/after
// text plus the supporting document and change reason the save required.
type Amendment struct {
	InternalId      int       `json:"-"`
	Id              string    `json:"id"`
	RuleId          int       `json:"-"`
	RuleNumber      string    `json:"ruleNumber"`
	ChapterNumber   int       `json:"chapterNumber"`
	OldTitle        string    `json:"oldTitle"`
	NewTitle        string    `json:"newTitle"`
	OldContent      string    `json:"oldContent"`
	NewContent      string    `json:"newContent"`
	SupportingDoc   string    `json:"supportingDoc"`
	ChangeReason    string    `json:"changeReason"`
	DocType         string    `json:"docType"`
	UploadedFileUrl *string   `json:"uploadedFileUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AmendmentSummary aggregates amendment activity for one chapter
// over a reporting window.
type AmendmentSummary struct {
	ChapterNumber  int       `json:"chapterNumber"`
	AmendmentCount int       `json:"amendmentCount"`
	RulesTouched   int       `json:"rulesTouched"`
	FirstChange    time.Time `json:"firstChange"`
	LastChange     time.Time `json:"lastChange"`
}
