package data

import "time"

// UploadedFile is the stored record of one supporting-document or
// manual upload. Url is the path the server serves the file back from.
type UploadedFile struct {
	InternalId int       `json:"-"`
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Url        string    `json:"url"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}
