package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/felixgeelhaar/todolist/internal/identity/application/auth"
	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Priority          string    `json:"priority"`
	Deadline          string    `json:"deadline,omitempty"`
	DaysUntilDeadline int       `json:"days_until_deadline"`
	CreatedAt         time.Time `json:"created_at"`
	Owner             string    `json:"owner"`
}

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// UpdateTaskRequest is the body of PUT /api/v1/tasks/{id}. Omitted fields keep
// their stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *Server) toResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:                t.ID(),
		Title:             t.Title(),
		Description:       t.Description(),
		Priority:          t.Priority().String(),
		DaysUntilDeadline: t.DaysUntilDeadline(s.now()),
		CreatedAt:         t.CreatedAt(),
		Owner:             t.Owner().Username,
	}
	if d := t.Deadline(); d != nil {
		resp.Deadline = d.String()
	}
	return resp
}

func (s *Server) toResponses(tasks []*task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toResponse(t))
	}
	return out
}

// issueToken handles POST /api/v1/token
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.apiError(w, r, err)
		return
	}

	token, err := s.auth.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.apiError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.auth.TokenTTLSeconds(),
	})
}

// apiListTasks handles GET /api/v1/tasks
func (s *Server) apiListTasks(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	tasks, err := s.tasks.Search(r.Context(), principal, r.URL.Query().Get("q"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponses(tasks))
}

// apiListAll handles GET /api/v1/tasks/all
func (s *Server) apiListAll(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	tasks, err := s.tasks.ListAll(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponses(tasks))
}

// apiFilterByPriority handles GET /api/v1/tasks/priority/{priority}
func (s *Server) apiFilterByPriority(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	priority, err := value_objects.ParsePriority(r.PathValue("priority"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	tasks, err := s.tasks.FilterByPriority(r.Context(), priority)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponses(tasks))
}

// apiGetTask handles GET /api/v1/tasks/{id}
func (s *Server) apiGetTask(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	t, err := s.tasks.GetByID(r.Context(), id)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(t))
}

// apiCreateTask handles POST /api/v1/tasks
func (s *Server) apiCreateTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	var req CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.apiError(w, r, err)
		return
	}

	t, err := newTask(req.Title, req.Description, req.Priority, req.Deadline)
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	saved, err := s.tasks.Save(r.Context(), principal, t)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/tasks/%d", saved.ID()))
	writeJSON(w, http.StatusCreated, s.toResponse(saved))
}

// apiUpdateTask handles PUT /api/v1/tasks/{id}
func (s *Server) apiUpdateTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.apiError(w, r, err)
		return
	}

	changes := services.TaskChanges{Title: req.Title, Description: req.Description}
	if req.Priority != nil {
		p, err := value_objects.ParsePriority(*req.Priority)
		if err != nil {
			s.apiError(w, r, err)
			return
		}
		changes.Priority = &p
	}

	saved, err := s.tasks.Update(r.Context(), principal, id, changes)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(saved))
}

// apiDeleteTask handles DELETE /api/v1/tasks/{id}. A task owned by someone
// else is left alone and still answers 204.
func (s *Server) apiDeleteTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	if err := s.tasks.Delete(r.Context(), principal, id); err != nil {
		s.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// newTask builds an unsaved task from loosely typed input.
func newTask(title, description, priority, deadline string) (*task.Task, error) {
	p, err := value_objects.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	d, err := value_objects.ParseOptionalDeadline(deadline)
	if err != nil {
		return nil, err
	}

	t := task.NewTask(title, description)
	if err := t.SetPriority(p); err != nil {
		return nil, err
	}
	t.SetDeadline(d)
	return t, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", errBadRequest, raw)
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
