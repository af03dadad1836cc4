package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/value_objects"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"list", "detail", "form", "login", "error"}

// pages holds one template set per page, each parsed together with the layout.
type pages struct {
	sets map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{sets: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

// render executes into a buffer first so a template error still yields a clean 500.
func (p *pages) render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := p.sets[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type taskView struct {
	ID           int64
	Title        string
	Description  string
	Priority     string
	PriorityName string
	Deadline     string
	DaysLeft     int
	CreatedAt    string
	Owner        string
}

type priorityOption struct {
	Value    string
	Label    string
	Selected bool
}

type listData struct {
	Principal string
	Query     string
	Tasks     []taskView
}

type detailData struct {
	Principal string
	Task      taskView
}

type formData struct {
	Principal  string
	IsEdit     bool
	Action     string
	Task       taskView
	Priorities []priorityOption
	Error      string
}

type loginData struct {
	Principal string
	Username  string
	Error     string
}

type errorData struct {
	Principal string
	Status    int
	Title     string
	Message   string
}

func viewOf(t *task.Task, now time.Time) taskView {
	v := taskView{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Priority:     t.Priority().Label(),
		PriorityName: t.Priority().String(),
		DaysLeft:     t.DaysUntilDeadline(now),
		Owner:        t.Owner().Username,
	}
	if d := t.Deadline(); d != nil {
		v.Deadline = d.String()
	}
	if !t.CreatedAt().IsZero() {
		v.CreatedAt = t.CreatedAt().Format("2006-01-02 15:04")
	}
	return v
}

func priorityOptions(selected value_objects.Priority) []priorityOption {
	all := value_objects.AllPriorities()
	opts := make([]priorityOption, 0, len(all))
	for _, p := range all {
		opts = append(opts, priorityOption{
			Value:    p.String(),
			Label:    p.Label(),
			Selected: p == selected,
		})
	}
	return opts
}
