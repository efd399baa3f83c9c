package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `env:"CHAT_SERVER_URL,default=http://localhost:8080"`
	Name      string `env:"CHAT_NAME,required=true"`
	Password  string `env:"CHAT_PASSWORD,required=true"`
	ChatID    string `env:"CHAT_ID,required=true"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`
}

type inboundFrame struct {
	Type string `json:"type"`
	Data struct {
		SenderID  string    `json:"senderId"`
		UserID    string    `json:"userId"`
		Content   string    `json:"content"`
		IsTyping  bool      `json:"isTyping"`
		Message   string    `json:"message"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"data"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run logs in, joins the realtime socket and sends every stdin line to CHAT_ID.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Authenticate and open the socket.
	token, err := login(ctx, config)
	if err != nil {
		return exitRuntime, err
	}
	url := "ws" + strings.TrimPrefix(config.ServerURL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerURL, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()
	log.Info("Connected (Ctrl+C to quit)", "server", config.ServerURL, "chat_id", config.ChatID)

	// 4. Outbound lines.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			err := conn.WriteJSON(map[string]any{
				"type": "message",
				"data": map[string]string{"chatId": config.ChatID, "content": line},
			})
			if err != nil {
				log.Error("Sending failed", "error", err)
				stop()
				return
			}
		}
	}()
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	// 5. Reception loop until the context is canceled or the server closes the socket.
	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return exitOK, nil
			}
			return exitRuntime, fmt.Errorf("stream error: %w", err)
		}
		switch frame.Type {
		case "message":
			fmt.Printf("[%s] %s: %s\n", frame.Data.CreatedAt.Local().Format(time.TimeOnly), frame.Data.SenderID, frame.Data.Content)
		case "typing":
			if frame.Data.IsTyping {
				fmt.Printf("%s is typing...\n", frame.Data.UserID)
			}
		case "error":
			log.Warn("Server rejected a frame", "error", frame.Data.Message)
		}
	}
}

func login(ctx context.Context, config Config) (string, error) {
	body, err := json.Marshal(map[string]string{"name": config.Name, "password": config.Password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.ServerURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return res.Token, nil
}
