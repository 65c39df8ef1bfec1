package model

import "time"

// CommentInput holds the fields supplied when posting a comment.
type CommentInput struct {
	ItemType   ItemKind `json:"item_type" db:"item_type"`
	ItemID     int64    `json:"item_id" db:"item_id"`
	AuthorName string   `json:"author_name" db:"author_name"`
	Content    string   `json:"content" db:"content"`
}

// Comment is a note on a task or handover.
type Comment struct {
	ID int64 `json:"id" db:"id"`
	CommentInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the owner of the comment.
func (c Comment) Ref() ItemRef { return ItemRef{Kind: c.ItemType, ID: c.ItemID} }
