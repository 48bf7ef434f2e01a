package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
)
