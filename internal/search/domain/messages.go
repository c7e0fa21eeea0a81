package domain

// User-facing validation messages. Both the service and the request binding
// report these verbatim.
const (
	MsgQueryRequired  = "Search query is required"
	MsgQueryTooLong   = "Search query must be 500 characters or less"
	MsgDateOrder      = "Date 'to' must be after date 'from'"
	MsgInvalidFrom    = "Date 'from' must be an ISO 8601 date"
	MsgInvalidTo      = "Date 'to' must be an ISO 8601 date"
	MsgInvalidLimit   = "Limit must be between 1 and 100"
	MsgInvalidOffset  = "Offset must be 0 or greater"
	MsgOffsetRequired = "Offset is required"
	MsgInvalidSort    = "Invalid sort field"
	MsgInvalidOrder   = "Sort order must be 'asc' or 'desc'"
	MsgInvalidEntity  = "Invalid entity type"
	MsgInvalidFilter  = "Invalid filter value"
	MsgInvalidRequest = "Invalid search request"
)
