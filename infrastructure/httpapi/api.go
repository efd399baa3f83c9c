// Package httpapi exposes chat administration, history and statuses as JSON over HTTP.
package httpapi

import (
	"chat-sync/auth"
	"chat-sync/domain/chat"
	"chat-sync/errors"
	"chat-sync/services"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const maxBodySize = 1 << 20

type API struct {
	log      *slog.Logger
	chats    services.IChatService
	statuses services.IStatusService
	accounts services.IAuthService
	validate *validator.Validate
}

func NewAPI(log *slog.Logger, chats services.IChatService, statuses services.IStatusService,
	accounts services.IAuthService) *API {
	return &API{
		log:      log,
		chats:    chats,
		statuses: statuses,
		accounts: accounts,
		validate: validator.New(),
	}
}

// Routes builds the HTTP surface. realtime serves the websocket upgrade on /ws
// and authenticates itself from the query string.
func (a *API) Routes(realtime http.Handler) http.Handler {
	protected := auth.Middleware(a.accounts, a.writeError)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", a.handleRegister)
	mux.HandleFunc("POST /api/login", a.handleLogin)
	mux.Handle("POST /api/chats", protected(http.HandlerFunc(a.handleCreateChat)))
	mux.Handle("GET /api/chats", protected(http.HandlerFunc(a.handleListChats)))
	mux.Handle("POST /api/chats/direct", protected(http.HandlerFunc(a.handleCreateDirectChat)))
	mux.Handle("POST /api/chats/{id}/members", protected(http.HandlerFunc(a.handleAddMember)))
	mux.Handle("GET /api/chats/{id}/messages", protected(http.HandlerFunc(a.handleListMessages)))
	mux.Handle("POST /api/status", protected(http.HandlerFunc(a.handlePostStatus)))
	mux.Handle("GET /api/status", protected(http.HandlerFunc(a.handleListStatuses)))
	mux.Handle("GET /api/users/search", protected(http.HandlerFunc(a.handleSearchUser)))
	if realtime != nil {
		mux.Handle("GET /ws", realtime)
	}
	return mux
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	token, participant, err := a.accounts.Register(r.Context(), body.Name, body.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, tokenResponse{
		Token: string(token),
		User:  lo.ToPtr(toParticipantResponse(participant)),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	token, err := a.accounts.Login(r.Context(), body.Name, body.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, tokenResponse{Token: string(token)})
}

func (a *API) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	var body createChatRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	c, err := a.chats.CreateChat(r.Context(), chat.CreateChatCommand{
		Name:        body.Name,
		Description: body.Description,
		Kind:        chat.KindGroup,
		CreatorID:   participantID,
		Members: lo.Map(body.Members, func(id string, _ int) chat.ParticipantID {
			return chat.ParticipantID(id)
		}),
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, toChatResponse(c))
}

func (a *API) handleListChats(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	chats, err := a.chats.ListChats(r.Context(), participantID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toChatResponses(chats))
}

func (a *API) handleCreateDirectChat(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	var body pinRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	c, err := a.chats.CreateDirectChat(r.Context(), participantID, body.UserPIN)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toChatResponse(c))
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	var body pinRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	c, err := a.chats.AddMember(r.Context(), participantID, chat.ChatID(r.PathValue("id")), body.UserPIN)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toChatResponse(c))
}

func (a *API) handleListMessages(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	cmd := chat.GetMessagesCommand{ChatID: chat.ChatID(r.PathValue("id"))}
	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		cmd.Cursor = &cursor
	}
	messages, next, err := a.chats.ListMessages(r.Context(), participantID, cmd)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, messagesResponse{
		Messages:   toMessageResponses(messages),
		NextCursor: next,
	})
}

func (a *API) handlePostStatus(w http.ResponseWriter, r *http.Request) {
	participantID, _ := auth.ParticipantFrom(r.Context())
	var body postStatusRequest
	if err := a.decode(r, &body); err != nil {
		a.writeError(w, err)
		return
	}
	post, err := a.statuses.PostStatus(r.Context(), chat.PostStatusCommand{
		AuthorID: participantID,
		Content:  body.Content,
		ImageURL: body.ImageURL,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, toStatusResponse(post, ""))
}

func (a *API) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	views, err := a.statuses.ListActiveStatuses(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toStatusResponses(views))
}

func (a *API) handleSearchUser(w http.ResponseWriter, r *http.Request) {
	body := pinRequest{UserPIN: r.URL.Query().Get("pin")}
	if err := a.validate.Struct(body); err != nil {
		a.writeError(w, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err))
		return
	}
	participant, err := a.chats.SearchByPIN(r.Context(), body.UserPIN)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toParticipantResponse(participant))
}

// decode reads a JSON body into dst and validates its struct tags.
func (a *API) decode(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if err := a.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		a.log.Error("Request failed", "error", err)
		message = http.StatusText(status)
	}
	a.writeJSON(w, status, errorResponse{Error: message})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Warn("Writing response failed", "error", err)
	}
}
