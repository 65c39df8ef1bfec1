package model

import (
	"fmt"
	"time"
)

// AttachmentInput holds the metadata row written after a blob upload.
type AttachmentInput struct {
	ItemType    ItemKind `json:"item_type" db:"item_type"`
	ItemID      int64    `json:"item_id" db:"item_id"`
	FileName    string   `json:"file_name" db:"file_name"`
	StoragePath string   `json:"storage_path" db:"storage_path"`
	SizeBytes   int64    `json:"size_bytes" db:"size_bytes"`
	MimeType    string   `json:"mime_type" db:"mime_type"`
	UploadedBy  string   `json:"uploaded_by" db:"uploaded_by"`
}

// Attachment is a file stored in the blob store and owned by a task,
// handover or schedule.
type Attachment struct {
	ID int64 `json:"id" db:"id"`
	AttachmentInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the owner of the attachment.
func (a Attachment) Ref() ItemRef { return ItemRef{Kind: a.ItemType, ID: a.ItemID} }

// StoragePath builds the blob path {item_type}/{item_id}/{unix_millis}_{filename}.
func StoragePath(ref ItemRef, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%d/%d_%s", ref.Kind, ref.ID, at.UnixMilli(), fileName)
}
