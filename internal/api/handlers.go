package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gwi.com/message-service/internal/core"
	"gwi.com/message-service/internal/store"
)

const (
	internalServerError = "Internal server error"
	invalidRequestBody  = "Invalid request body"
	messageSent         = "Message sent successfully"
)

type APIHandler struct {
	messagingService *core.MessagingService
}

func NewAPIHandler(ms *core.MessagingService) *APIHandler {
	return &APIHandler{messagingService: ms}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Request fields take any JSON value and pass it to the store as is. Absent
// fields stay nil and are written as NULL.
type CreateUserRequest struct {
	Username any `json:"username"`
}

type CreateUserResponse struct {
	UserID string `json:"userid"`
}

type SendMessageRequest struct {
	Sender   any `json:"sender"`
	Receiver any `json:"receiver"`
	Message  any `json:"message"`
}

type SendMessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (h *APIHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.messagingService.ListUsers(r.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *APIHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	userID, err := h.messagingService.CreateUser(r.Context(), req.Username)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, CreateUserResponse{UserID: userID})
}

func (h *APIHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	id, err := h.messagingService.SendMessage(r.Context(), store.NewMessage{
		Sender:   req.Sender,
		Receiver: req.Receiver,
		Message:  req.Message,
	})
	if err != nil {
		log.Printf("Error sending message: %v", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SendMessageResponse{Message: messageSent, ID: id})
}

func (h *APIHandler) ListUserMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userid")

	messages, err := h.messagingService.GetMessagesForUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing messages for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// ListAllMessagesHandler serves the administrative listing.
// TODO: add authentication before exposing /super routes beyond a trusted network.
func (h *APIHandler) ListAllMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messagingService.GetAllMessages(r.Context())
	if err != nil {
		log.Printf("Error listing all messages: %v", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.messagingService.CheckHealth(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		writeError(w, http.StatusInternalServerError, internalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody fills v from a JSON request body. Bodies that are not declared as
// application/json, and empty bodies, leave v untouched. Only malformed JSON is
// an error; a value of the wrong shape leaves the fields unset.
func decodeBody(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber() // numbers reach the store in their literal form
	err = dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
