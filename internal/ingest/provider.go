package ingest

// Result holds the outcome of loading one workout export.
type Result struct {
	RowsReceived  int `json:"rows_received"`
	RowsDropped   int `json:"rows_dropped"`
	SessionsBuilt int `json:"sessions_built"`
	SetsBuilt     int `json:"sets_built"`

	// Message explains dropped rows. Empty when every row was used.
	Message string `json:"message,omitempty"`
}
