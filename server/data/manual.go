package data

import "time"

// Manual is static reference metadata for an external manual
// (e.g. IRPWM). Read-only in this system.
type Manual struct {
	InternalId  int       `json:"-"`
	Id          string    `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Circular is the same shape of reference metadata as Manual,
// kept as a separate category with an optional serial number.
type Circular struct {
	InternalId  int       `json:"-"`
	Id          string    `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Number      *string   `json:"number"`
	CreatedAt   time.Time `json:"createdAt"`
}
