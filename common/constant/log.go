package constant

const (
	LogFieldErr       = "error"
	LogFieldPayload   = "payload"
	LogFieldResponse  = "response"
	LogFieldTraceId   = "trace_id"
	LogFieldProductId = "product_id"
	LogFieldChatId    = "chat_id"
	LogFieldCount     = "count"
)
