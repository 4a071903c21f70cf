package logger

// Field names shared by every structured log line.
const (
	FieldComponent  = "component"
	FieldChart      = "chart"
	FieldEndpoint   = "endpoint"
	FieldCount      = "count"
	FieldError      = "error"
	FieldYear       = "year"
	FieldGeneration = "generation"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldFile       = "file"
)
