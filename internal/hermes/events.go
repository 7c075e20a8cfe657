package hermes

import "time"

const (
	// SubjectTranscriptUploaded carries a raw chat export to import.
	SubjectTranscriptUploaded = "linekb.transcript.uploaded"
	// SubjectEntriesImported announces the outcome of an import.
	SubjectEntriesImported = "linekb.entries.imported"
)

// TranscriptUploadedEvent is published by the upload surface once an export
// file has been received.
type TranscriptUploadedEvent struct {
	UploadID string `json:"upload_id"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// ImportedEvent summarizes one processed upload for downstream indexers.
type ImportedEvent struct {
	UploadID    string    `json:"upload_id"`
	FileName    string    `json:"file_name"`
	Entries     int       `json:"entries"`
	EmbeddedFAQ int       `json:"embedded_faq"`
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	SkippedRows int       `json:"skipped_rows"`
	DryRun      bool      `json:"dry_run"`
	Timestamp   time.Time `json:"timestamp"`
}
