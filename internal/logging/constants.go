package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldStore       = "store"
	FieldIndex       = "index"
	FieldCount       = "count"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldMonth       = "month"
	FieldRule        = "rule"
	FieldFrequency   = "frequency"
	FieldAmount      = "amount"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDelimiter   = "delimiter"
	FieldOutputFile  = "output_file"
)
