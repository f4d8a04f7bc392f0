package models

// ImportStatus is a point-in-time copy of the import progress.
// Timestamps are Unix milliseconds, zero when unset.
type ImportStatus struct {
	RunID            string  `json:"runId,omitempty"`
	IsProcessing     bool    `json:"isProcessing"`
	TotalRecords     int     `json:"totalRecords"`
	ProcessedRecords int     `json:"processedRecords"`
	SavedRecords     int     `json:"savedRecords"`
	StartTime        int64   `json:"startTime"`
	EndTime          int64   `json:"endTime"`
	Error            *string `json:"error"`
}
