package consts

const (
	AttachmentMetaKey = "attachment:meta:"
)

const (
	ConversationAuditLock = "lock:conversation:audit"
)
