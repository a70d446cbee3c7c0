package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/google/uuid"
)

// Content is the decrypted payload of a folder.
type Content struct {
	Files     []Attachment `json:"files"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Attachment is a file stored inside a Content. Its payload is not
// encrypted separately; it rides inside the sealed Content.
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   []byte    `json:"payload"`
	MediaType string    `json:"mediaType"`
	ByteSize  int64     `json:"byteSize"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContent returns an empty content created at now.
func NewContent(now time.Time) *Content {
	now = now.UTC()
	return &Content{
		Files:     []Attachment{},
		Notes:     "",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch moves UpdatedAt to now, never before CreatedAt.
func (c *Content) Touch(now time.Time) {
	now = now.UTC()
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

// AddAttachment admits payload as a new attachment. Payloads above
// maxSize are rejected with common.ErrAttachmentTooLarge; a non-positive
// maxSize falls back to common.MaxAttachmentSize.
func (c *Content) AddAttachment(name, mediaType string, payload []byte, maxSize int64, now time.Time) (*Attachment, error) {
	if maxSize <= 0 {
		maxSize = common.MaxAttachmentSize
	}
	if int64(len(payload)) > maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", common.ErrAttachmentTooLarge, len(payload), maxSize)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	now = now.UTC()
	a := Attachment{
		ID:        c.newAttachmentID(),
		Name:      name,
		Payload:   payload,
		MediaType: mediaType,
		ByteSize:  int64(len(payload)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Files = append(c.Files, a)
	c.Touch(now)

	return &c.Files[len(c.Files)-1], nil
}

// FindAttachment returns the attachment with the given id.
func (c *Content) FindAttachment(id string) (*Attachment, error) {
	for i := range c.Files {
		if c.Files[i].ID == id {
			return &c.Files[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// RemoveAttachment drops the attachment with the given id, keeping order.
func (c *Content) RemoveAttachment(id string, now time.Time) error {
	for i := range c.Files {
		if c.Files[i].ID == id {
			c.Files = append(c.Files[:i], c.Files[i+1:]...)
			c.Touch(now)
			return nil
		}
	}
	return common.ErrorNotFound
}

// SetNotes replaces the free-text notes.
func (c *Content) SetNotes(text string, now time.Time) {
	c.Notes = text
	c.Touch(now)
}

func (c *Content) newAttachmentID() string {
	for {
		id := uuid.NewString()
		if _, err := c.FindAttachment(id); err != nil {
			return id
		}
	}
}
