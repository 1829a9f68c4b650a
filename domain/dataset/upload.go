package dataset

import (
	"time"

	"ppi/domain/core"
)

// Upload describes one stored spreadsheet file.
type Upload struct {
	ID           core.ID   `json:"id" db:"id"`
	OriginalName string    `json:"originalName" db:"original_name"`
	StoredName   string    `json:"savedName" db:"stored_name"`
	Size         int64     `json:"size" db:"size_bytes"`
	RowCount     int       `json:"count" db:"row_count"`
	HeaderCount  int       `json:"headerCount" db:"header_count"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// FileInfo is a storage listing entry. OriginalName is filled from the
// upload catalog when one is configured.
type FileInfo struct {
	Name         string    `json:"name"`
	OriginalName string    `json:"originalName,omitempty"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
