package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
	MimePrefixApp   = "application"
)

const (
	ConversationStatusOpen   = 1
	ConversationStatusClosed = 2
)

const (
	MessageStatusPending = "pending"
	MessageStatusSent    = "sent"
)
