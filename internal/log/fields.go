package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Option fields
	FieldKey   = "key"
	FieldKind  = "kind"
	FieldValue = "value"
	FieldCount = "count"

	// Path / file fields
	FieldPath   = "path"
	FieldRoot   = "root"
	FieldFormat = "format"

	// HTTP fields
	FieldMethod   = "method"
	FieldRoute    = "route"
	FieldStatus   = "status"
	FieldDuration = "duration"
	FieldAddr     = "addr"
)
