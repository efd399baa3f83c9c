package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectRecord(t *testing.T) {
	req := require.New(t)

	row := InspectRecord("participant:alice", []byte(`{"id":"alice","name":"alice","pin":"123456","password_hash":"$argon2id$secret"}`))
	req.Equal("PARTICIPANT", row.Type)
	req.Contains(row.Detail, `"pin":"123456"`)
	req.NotContains(row.Detail, "argon2id")

	row = InspectRecord("pin:123456", []byte("alice"))
	req.Equal("INDEX", row.Type)
	req.Equal("alice", row.Detail)

	row = InspectRecord("status:1", []byte(`{"content":"`+strings.Repeat("x", 300)+`"}`))
	req.Equal("STATUS", row.Type)
	req.True(strings.HasSuffix(row.Detail, "..."))
}
