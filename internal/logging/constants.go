package logging

// Standardized field names for structured logging.
const (
	FieldVendor     = "vendor"
	FieldPhase      = "phase"
	FieldCategory   = "category"
	FieldRule       = "rule"
	FieldSection    = "section"
	FieldConfidence = "confidence"
	FieldSimilarity = "similarity"
	FieldDirection  = "direction"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldBatch      = "batch"
	FieldRunID      = "run_id"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldTable      = "table"
)
