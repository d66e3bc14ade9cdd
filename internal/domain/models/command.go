package models

type CommandType string

const (
	CommandStart             CommandType = "/start"
	CommandHelp              CommandType = "/help"
	CommandNews              CommandType = "/news"
	CommandSetSource         CommandType = "/setsource"
	CommandSubscribe         CommandType = "/subscribe"
	CommandUnsubscribe       CommandType = "/unsubscribe"
	CommandListSources       CommandType = "/listsources"
	CommandListSubscriptions CommandType = "/listsubscriptions"
	CommandUnknown           CommandType = "unknown"
)

type Command struct {
	Type         CommandType
	ChatIdentity string
	Args         string
	Text         string
	Username     string
}

// Callback описывает нажатие на кнопку inline-меню.
type Callback struct {
	ID           string
	ChatIdentity string
	MessageID    int
	Data         string
}
