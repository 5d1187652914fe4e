package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) Matches(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := h.Service.Matches(r.Context(), sess)
	respond(w, r, v, err)
}

func (h *Handlers) Conversations(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := h.Service.Messenger(sess).Open(r.Context())
	respond(w, r, v, err)
}

// Conversation — список диалогов и сообщения выбранного.
func (h *Handlers) Conversation(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	m := h.Service.Messenger(sess)

	v, err := m.Open(r.Context())
	if err != nil {
		respond(w, r, v, err)
		return
	}

	v, err = m.Select(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, v, err)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var in sendMessageRequest
	if err := decodeStrict(r, &in); err != nil {
		invalidArgument(w, r)
		return
	}

	m := h.Service.Messenger(sess)
	m.Focus(chi.URLParam(r, "id"))

	v, err := m.Send(r.Context(), in.Text)
	respond(w, r, v, err)
}
