package model

// Record is a schema-agnostic map for one row of an uploaded dataset.
// Columns are only known at runtime from the file's header row; scalar
// values are strings or float64. A missing key means "no value".
type Record map[string]interface{}

// Dataset is an ordered sequence of uniform-column records. Order is the
// row order of the source/cleaned data.
type Dataset []Record

// Clone returns a shallow copy of the dataset slice. Records themselves are
// shared; callers never mutate records in place.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// RemovedRow is one row dropped by a cleaning run, with a human-readable
// justification. ID is a durable identifier assigned when the cleaning run
// completes; restores address rows by ID, never by list position.
type RemovedRow struct {
	ID     string `json:"id"`
	Row    Record `json:"row"`
	Reason string `json:"reason"`
}

// CleaningState pairs the cleaned dataset with the rows still held out of
// it. This is the unit of history: every undo/redo snapshot is one
// CleaningState. A record is never in both halves at once.
type CleaningState struct {
	Cleaned Dataset      `json:"cleaned"`
	Removed []RemovedRow `json:"removed"`
}

// TotalRows returns the size of the row universe known to this cleaning
// run. Constant across restores, undos and redos.
func (s CleaningState) TotalRows() int {
	return len(s.Cleaned) + len(s.Removed)
}

// ChangeLog summarizes what a cleaning run did to the uploaded data.
type ChangeLog struct {
	Summary string       `json:"summary"`
	Removed []RemovedRow `json:"removed_rows"`
}

// CleaningResult is the full outcome of one cleaning call to the AI
// collaborator.
type CleaningResult struct {
	Cleaned   Dataset   `json:"cleaned_data"`
	ChangeLog ChangeLog `json:"change_log"`
}
