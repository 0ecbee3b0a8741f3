package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raye/pagesmith/server/internal/auth"
	"github.com/raye/pagesmith/server/internal/github"
	"github.com/raye/pagesmith/server/internal/publish"
	"github.com/raye/pagesmith/server/internal/store"
)

// Publisher runs a publish end to end. Implemented by *publish.Publisher;
// inject a fake in tests.
type Publisher interface {
	Publish(ctx context.Context, req publish.Request) (*publish.Result, error)
}

// Validator checks an arbitrary repository URL. Implemented by *github.Client.
type Validator interface {
	Validate(ctx context.Context, url string) github.ValidateResult
}

type Handler struct {
	store *store.Store
	pub   Publisher
	val   Validator
}

func NewHandler(st *store.Store, opts github.CommitOptions) *Handler {
	gh := github.NewClient()
	return &Handler{store: st, pub: publish.New(st, st, gh, opts), val: gh}
}

// NewHandlerWith builds a handler with custom collaborators (e.g. for tests).
func NewHandlerWith(st *store.Store, pub Publisher, val Validator) *Handler {
	return &Handler{store: st, pub: pub, val: val}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.OrganizationID == "" {
		req.OrganizationID = auth.OrgFromRequest(r)
	}
	if req.OrganizationID == "" || req.Token == "" {
		http.Error(w, "organizationId and token required", http.StatusBadRequest)
		return
	}
	h.store.SetCredential(req.OrganizationID, req.Token)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	org := req.OrganizationID
	if org == "" {
		org = auth.OrgFromRequest(r)
	}
	res, err := h.pub.Publish(r.Context(), publish.Request{
		OrgID:    org,
		App:      req.App,
		Private:  req.Private,
		Files:    req.Files,
		Scaffold: req.Scaffold,
		Message:  req.Message,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, publish.ErrNotConnected) {
			status = http.StatusPreconditionFailed
		}
		http.Error(w, err.Error(), status)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url query parameter required", http.StatusBadRequest)
		return
	}
	// Validation never fails the request; the result is always structured.
	respondJSON(w, http.StatusOK, h.val.Validate(r.Context(), url))
}
