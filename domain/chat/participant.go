package chat

// ParticipantID is the stable identifier issued by the authentication layer.
type ParticipantID string

// Participant is owned by the profile store; the core only reads it.
// PasswordHash is an encoded argon2id hash and never leaves the server.
type Participant struct {
	ID           ParticipantID
	Name         string
	PIN          string
	PasswordHash string
}
