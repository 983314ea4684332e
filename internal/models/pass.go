// Package models defines the wallet's entities: passes, their barcodes, tags
// and groups, and the read-side aggregate joining a pass with its tags.
package models

import (
	"time"
)

// PassType classifies a pass.
type PassType string

const (
	PassTypeGeneric      PassType = "Generic"
	PassTypeBoardingPass PassType = "BoardingPass"
	PassTypeCoupon       PassType = "Coupon"
	PassTypeEventTicket  PassType = "EventTicket"
	PassTypeStoreCard    PassType = "StoreCard"
)

// AllPassTypes lists every pass type, in display order.
func AllPassTypes() []PassType {
	return []PassType{PassTypeGeneric, PassTypeBoardingPass, PassTypeCoupon, PassTypeEventTicket, PassTypeStoreCard}
}

// PassTypeFromString returns the matching type, or Generic for unknown input.
func PassTypeFromString(s string) PassType {
	for _, t := range AllPassTypes() {
		if string(t) == s {
			return t
		}
	}
	return PassTypeGeneric
}

// RelevantDate is a time window (End set) or an instant (End nil) at which a
// pass becomes relevant.
type RelevantDate struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// StartDate returns the beginning of the window.
func (d RelevantDate) StartDate() time.Time { return d.Start }

// Pass is one user-held pass. ID is the primary key; storing a pass with an
// existing ID replaces every scalar field of the stored row.
type Pass struct {
	ID                 string         `json:"id"`
	Type               PassType       `json:"type"`
	OrganizationName   string         `json:"organizationName"`
	Description        string         `json:"description"`
	SerialNumber       string         `json:"serialNumber"`
	PassTypeIdentifier string         `json:"passTypeIdentifier"`
	AddedAt            time.Time      `json:"addedAt"`
	RelevantDates      []RelevantDate `json:"relevantDates,omitempty"`
	ExpirationDate     *time.Time     `json:"expirationDate,omitempty"`
	Voided             bool           `json:"voided"`
	Archived           bool           `json:"archived"`

	WebServiceURL       string  `json:"webServiceURL,omitempty"`
	AuthenticationToken *string `json:"authenticationToken,omitempty"`

	BackgroundColor   *string `json:"backgroundColor,omitempty"`
	ForegroundColor   *string `json:"foregroundColor,omitempty"`
	LabelColor        *string `json:"labelColor,omitempty"`
	CompatibilityMode bool    `json:"compatibilityMode"`

	GroupID *int64   `json:"groupId,omitempty"`
	Barcode *Barcode `json:"barcode,omitempty"`
}

// IsUpdatable reports whether the pass can be refreshed from its web service.
func (p Pass) IsUpdatable() bool {
	return p.WebServiceURL != ""
}

// FirstRelevantDate returns the start of the first relevant date, if any.
func (p Pass) FirstRelevantDate() (time.Time, bool) {
	if len(p.RelevantDates) == 0 {
		return time.Time{}, false
	}
	return p.RelevantDates[0].StartDate(), true
}

// Tag is a user-defined label. Names are not unique; identity is the ID.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color int32  `json:"color"`
}

// PassGroup holds passes shown together. ID 0 means not yet stored.
type PassGroup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PassTagCrossRef joins a pass to a tag.
type PassTagCrossRef struct {
	PassID string
	TagID  int64
}

// LocalizedPassWithTags is a pass together with its resolved tags.
type LocalizedPassWithTags struct {
	Pass Pass
	Tags []Tag
}

// HasTag reports whether the tag with the given id is attached.
func (p LocalizedPassWithTags) HasTag(tagID int64) bool {
	for _, t := range p.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
