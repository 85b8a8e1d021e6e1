package logger

// Standard field names for consistent logging.
const (
	FieldService   = "service"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldSessionID = "session_id"
	FieldStatus    = "status"
	FieldRole      = "role"
	FieldRequestID = "request_id"
)
