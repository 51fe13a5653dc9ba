package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "chatapp.db?_busy_timeout=5000", sqliteDSN("chatapp.db"))
	assert.Equal(t, "/var/data/chat.db?_busy_timeout=5000", sqliteDSN("/var/data/chat.db"))
}
