package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/todolist/internal/identity/application/auth"
	identity "github.com/felixgeelhaar/todolist/internal/identity/domain"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

// loginPage handles GET /login
func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "login", loginData{})
}

// login handles POST /login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	token, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		status, message := http.StatusUnauthorized, "Invalid username or password."
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.ErrorContext(r.Context(), "login failed", "error", err)
			status, message = http.StatusInternalServerError, "Login is unavailable, try again later."
		}
		s.renderPage(w, r, status, "login", loginData{Username: username, Error: message})
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout handles POST /logout
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// listPage handles GET /
func (s *Server) listPage(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	q := r.URL.Query().Get("q")
	tasks, err := s.tasks.Search(r.Context(), principal, q)
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	now := s.now()
	for _, t := range tasks {
		views = append(views, viewOf(t, now))
	}
	s.renderPage(w, r, http.StatusOK, "list", listData{
		Principal: principal.Username,
		Query:     q,
		Tasks:     views,
	})
}

// detailPage handles GET /{id}
func (s *Server) detailPage(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	t, err := s.loadTask(r)
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, "detail", detailData{
		Principal: principal.Username,
		Task:      viewOf(t, s.now()),
	})
}

// createPage handles GET /tasks/create
func (s *Server) createPage(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	s.renderPage(w, r, http.StatusOK, "form", formData{
		Principal:  principal.Username,
		Action:     "/",
		Priorities: priorityOptions(value_objects.DefaultPriority),
	})
}

// editPage handles GET /{id}/edit
func (s *Server) editPage(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	t, err := s.loadTask(r)
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, "form", formData{
		Principal:  principal.Username,
		IsEdit:     true,
		Action:     fmt.Sprintf("/%d", t.ID()),
		Task:       viewOf(t, s.now()),
		Priorities: priorityOptions(t.Priority()),
	})
}

// createTask handles POST /
func (s *Server) createTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	t, err := newTask(
		r.PostFormValue("title"),
		r.PostFormValue("description"),
		r.PostFormValue("priority"),
		r.PostFormValue("deadline"),
	)
	if err != nil {
		s.renderPage(w, r, http.StatusBadRequest, "form", formData{
			Principal: principal.Username,
			Action:    "/",
			Task: taskView{
				Title:       r.PostFormValue("title"),
				Description: r.PostFormValue("description"),
				Deadline:    r.PostFormValue("deadline"),
			},
			Priorities: priorityOptions(value_objects.DefaultPriority),
			Error:      err.Error(),
		})
		return
	}

	if _, err := s.tasks.Save(r.Context(), principal, t); err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// updateTask handles POST /{id}. Only title, description and priority change.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}

	title := r.PostFormValue("title")
	description := r.PostFormValue("description")
	priority, err := value_objects.ParsePriority(r.PostFormValue("priority"))
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}

	changes := services.TaskChanges{Title: &title, Description: &description, Priority: &priority}
	if _, err := s.tasks.Update(r.Context(), principal, id, changes); err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// deleteTask handles POST /{id}/delete
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	if err := s.tasks.Delete(r.Context(), principal, id); err != nil {
		s.errorPage(w, r, principal, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) loadTask(r *http.Request) (*task.Task, error) {
	id, err := pathID(r)
	if err != nil {
		// A non-numeric segment is an unknown page, not a malformed request.
		return nil, fmt.Errorf("%w: %q", task.ErrTaskNotFound, r.PathValue("id"))
	}
	return s.tasks.GetByID(r.Context(), id)
}

func (s *Server) errorPage(w http.ResponseWriter, r *http.Request, principal identity.Principal, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "error", err)
	}
	s.renderPage(w, r, status, "error", errorData{
		Principal: principal.Username,
		Status:    status,
		Title:     http.StatusText(status),
		Message:   messageFor(status, err),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := s.pages.render(w, status, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
