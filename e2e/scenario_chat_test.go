package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type testChatSuite struct {
	BaseHTTPSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

type account struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		PIN  string `json:"pin"`
	} `json:"user"`
}

type frame struct {
	Type string `json:"type"`
	Data struct {
		ChatID   string `json:"chatId"`
		SenderID string `json:"senderId"`
		UserID   string `json:"userId"`
		Content  string `json:"content"`
		IsTyping bool   `json:"isTyping"`
	} `json:"data"`
}

func (s *testChatSuite) register() account {
	var res account
	name := fmt.Sprintf("u%s", uuid.NewString()[:8])
	status := s.Call(http.MethodPost, "/api/register", "", map[string]string{
		"name":     name,
		"password": "E2e!Password123",
	}, &res)
	s.Require().Equal(http.StatusCreated, status)
	return res
}

func (s *testChatSuite) read(conn *websocket.Conn) frame {
	var f frame
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&f))
	return f
}

func (s *testChatSuite) TestDirectChatFlow() {
	var alice, bob account
	var chatID string

	s.Run("Step 1: Register two participants", func() {
		s.Step("Register alice and bob")
		alice = s.register()
		bob = s.register()
	})

	s.Run("Step 2: Open a direct chat by pin", func() {
		s.Step("Alice opens a direct chat with bob's pin")
		var c struct {
			ID string `json:"id"`
		}
		s.Require().Equal(http.StatusOK, s.Call(http.MethodPost, "/api/chats/direct", alice.Token,
			map[string]string{"userPin": bob.User.PIN}, &c))
		chatID = c.ID
	})

	s.Run("Step 3: Typing then message over websockets", func() {
		s.Step("Both connect; alice types then sends")
		aliceConn := s.Dial(alice.Token)
		defer aliceConn.Close()
		bobConn := s.Dial(bob.Token)
		defer bobConn.Close()
		// let both registrations land before publishing
		time.Sleep(200 * time.Millisecond)

		s.Require().NoError(aliceConn.WriteJSON(map[string]any{
			"type": "typing", "data": map[string]any{"chatId": chatID, "isTyping": true},
		}))
		s.Require().NoError(aliceConn.WriteJSON(map[string]any{
			"type": "message", "data": map[string]any{"chatId": chatID, "content": "hello bob"},
		}))

		typing := s.read(bobConn)
		s.Equal("typing", typing.Type)
		s.True(typing.Data.IsTyping)
		stopped := s.read(bobConn)
		s.Equal("typing", stopped.Type)
		s.False(stopped.Data.IsTyping)
		message := s.read(bobConn)
		s.Equal("message", message.Type)
		s.Equal("hello bob", message.Data.Content)
		s.Equal(alice.User.ID, message.Data.SenderID)

		echo := s.read(aliceConn)
		s.Equal("message", echo.Type)
	})

	s.Run("Step 4: History and statuses", func() {
		s.Step("Bob reads the history and posts a status")
		var history struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		s.Require().Equal(http.StatusOK, s.Call(http.MethodGet, "/api/chats/"+chatID+"/messages", bob.Token, nil, &history))
		s.Require().NotEmpty(history.Messages)
		s.Equal("hello bob", history.Messages[len(history.Messages)-1].Content)

		s.Require().Equal(http.StatusCreated, s.Call(http.MethodPost, "/api/status", bob.Token,
			map[string]string{"content": "at lunch"}, nil))
		var statuses []struct {
			UserID string `json:"userId"`
		}
		s.Require().Equal(http.StatusOK, s.Call(http.MethodGet, "/api/status", alice.Token, nil, &statuses))
		s.NotEmpty(statuses)
	})
}
