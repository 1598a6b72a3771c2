package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuotationAttachment is a reference file uploaded with a quotation request
// (drawings, reference photos). Owned exclusively by its request and
// cascade-deleted with it.
type QuotationAttachment struct {
	ID          uuid.UUID
	QuotationID uuid.UUID
	File        string // Storage reference.
	FileName    string
	Description string
	UploadedAt  time.Time
}
