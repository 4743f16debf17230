package models

import (
	"net/url"
	"path"
	"strings"
	"time"

	id "checkpoint/pkg/domain"
)

// AttachmentKind tells renderers whether evidence can be shown inline.
type AttachmentKind string

const (
	AttachmentPhoto    AttachmentKind = "photo"
	AttachmentDocument AttachmentKind = "document"
)

var photoExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".gif": true, ".png": true, ".webp": true,
}

// Attachment is one evidence file stored by the upload flow.
type Attachment struct {
	Name string         `json:"name"`
	URL  string         `json:"url"`
	Kind AttachmentKind `json:"kind"`
}

// KindFromName classifies evidence by file extension, or by the download-URL
// media marker the file store puts on direct image links.
func KindFromName(name, rawURL string) AttachmentKind {
	if photoExtensions[strings.ToLower(path.Ext(name))] {
		return AttachmentPhoto
	}
	if u, err := url.Parse(rawURL); err == nil && strings.EqualFold(u.Query().Get("alt"), "media") {
		return AttachmentPhoto
	}
	return AttachmentDocument
}

// Normalize fills a missing kind.
func (a Attachment) Normalize() Attachment {
	if a.Kind != AttachmentPhoto && a.Kind != AttachmentDocument {
		a.Kind = KindFromName(a.Name, a.URL)
	}
	return a
}

// Result is the current outcome of one requirement within one audit.
// Pillar and standard references are denormalized from the checklist.
//
// Invariant: at most one current Result per (AuditID, RequirementID). A later
// save updates the Result identified by ID in place.
type Result struct {
	ID            id.ResultID      `json:"id"`
	AuditID       id.AuditID       `json:"audit_id"`
	PillarID      id.PillarID      `json:"pillar_id"`
	StandardID    id.StandardID    `json:"standard_id"`
	RequirementID id.RequirementID `json:"requirement_id"`
	Outcome       id.Outcome       `json:"outcome"`
	Comment       string           `json:"comment"`
	Attachments   []Attachment     `json:"attachments"`
	RecordedAt    time.Time        `json:"recorded_at"`
}

// IsNonConformity reports whether the result still needs an action plan.
func (r Result) IsNonConformity() bool {
	return r.Outcome == id.OutcomeNonConforming
}

// ResultInput is the caller supplied part of a Result.
type ResultInput struct {
	AuditID       id.AuditID
	RequirementID id.RequirementID
	Outcome       id.Outcome
	Comment       string
	Attachments   []Attachment
}

// CloseNonConformityComment is the comment written when a non-conformity is closed.
func CloseNonConformityComment(now time.Time) string {
	return "NC cerrada. Ver plan de acción asociado. - " + now.Format("02/01/2006")
}
