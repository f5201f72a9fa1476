package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-catalog-admin/components/console/commands"
	gocommand "github.com/goliatone/go-command"
)

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	CreateUser    gocommand.Commander[commands.CreateUserInput]
	UpdateUser    gocommand.Commander[commands.UpdateUserInput]
	DeleteUser    gocommand.Commander[commands.DeleteUserInput]
	DeleteComment gocommand.Commander[commands.DeleteCommentInput]
	CreateLead    gocommand.Commander[commands.CreateLeadInput]
	CreateFaq     gocommand.Commander[commands.CreateFaqInput]
	UpdateFaq     gocommand.Commander[commands.UpdateFaqInput]
	DeleteFaq     gocommand.Commander[commands.DeleteFaqInput]
}

func (h *Handlers) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateUser.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateUser(w http.ResponseWriter, r *http.Request, userID int) {
	var payload commands.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.UserID = userID
	if err := h.UpdateUser.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request, userID int) {
	input := commands.DeleteUserInput{UserID: userID}
	if err := h.DeleteUser.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleDeleteComment(w http.ResponseWriter, r *http.Request, commentID string) {
	input := commands.DeleteCommentInput{CommentID: commentID}
	if err := h.DeleteComment.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleCreateLead(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateLead.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleCreateFaq(w http.ResponseWriter, r *http.Request) {
	var payload commands.CreateFaqInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateFaq.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateFaq(w http.ResponseWriter, r *http.Request, faqID int) {
	var payload commands.UpdateFaqInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.FaqID = faqID
	if err := h.UpdateFaq.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleDeleteFaq(w http.ResponseWriter, r *http.Request, faqID int) {
	input := commands.DeleteFaqInput{FaqID: faqID}
	if err := h.DeleteFaq.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
