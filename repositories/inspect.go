package repositories

import (
	"encoding/json"
	"strings"

	"github.com/mama165/sdk-go/database"
)

// Record kinds shown by the debug inspector, keyed by key prefix.
var recordKinds = map[string]string{
	"msg":         "MESSAGE",
	"chat":        "CHAT",
	"member":      "MEMBER",
	"status":      "STATUS",
	"participant": "PARTICIPANT",
	"pin":         "INDEX",
	"name":        "INDEX",
}

const maxDetailLength = 120

// InspectRecord renders one stored entry for the badger inspectors.
// Password hashes are never displayed.
func InspectRecord(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	namespace, _, _ := strings.Cut(key, ":")
	kind, ok := recordKinds[namespace]
	if !ok {
		return row
	}
	row.Type = kind

	var fields map[string]any
	if err := json.Unmarshal(val, &fields); err != nil {
		// index entries hold a raw participant id
		row.Detail = truncate(string(val))
		return row
	}
	delete(fields, "password_hash")
	detail, err := json.Marshal(fields)
	if err != nil {
		return row
	}
	row.Detail = truncate(string(detail))
	return row
}

func truncate(s string) string {
	if len(s) <= maxDetailLength {
		return s
	}
	return s[:maxDetailLength] + "..."
}
