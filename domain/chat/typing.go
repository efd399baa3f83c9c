package chat

// TypingKey identifies one typing state machine.
type TypingKey struct {
	ChatID        ChatID
	ParticipantID ParticipantID
}
