package models

import "time"

// Document is a row of documents. Data is the raw JSONB body.
type Document struct {
	Collection string    `db:"collection"`
	DocID      string    `db:"doc_id"`
	Data       []byte    `db:"data"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// DocumentChange is the payload of a document_changes notification.
type DocumentChange struct {
	Collection string `json:"collection"`
	DocID      string `json:"doc_id"`
	Op         string `json:"op"`
}
