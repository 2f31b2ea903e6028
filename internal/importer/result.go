package importer

// RowError is a validation failure scoped to one data line. Row is
// 1-based and counts data rows only, the header excluded. Row-level
// errors never stop processing of subsequent lines.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes one import call. Imported counts every
// applied row (creates and updates alike); Errors preserves row order.
type ImportResult struct {
	Imported int        `json:"imported"`
	Errors   []RowError `json:"errors"`
}
