package chat

type PostMessageCommand struct {
	ChatID   ChatID
	SenderID ParticipantID
	Content  string
	Type     MessageType
	FileURL  string
	FileName string
}

type CreateChatCommand struct {
	Name        string
	Description string
	Kind        Kind
	CreatorID   ParticipantID
	Members     []ParticipantID
}

type GetMessagesCommand struct {
	ChatID ChatID
	Cursor *string
}

type PostStatusCommand struct {
	AuthorID ParticipantID
	Content  string
	ImageURL string
}
