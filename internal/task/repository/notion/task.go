package notion

import (
	"context"
	"errors"
	"strings"
	"time"

	"kairos/internal/model"
	"kairos/internal/task/repository"
	pkgLog "kairos/pkg/log"
	pkgNotion "kairos/pkg/notion"
)

// ErrEmptyName is returned by Create before any network call is made.
var ErrEmptyName = errors.New("task name cannot be empty")

type implRepository struct {
	client *pkgNotion.Client
	l      pkgLog.Logger
}

// New creates a new Notion-backed task repository.
func New(client *pkgNotion.Client, l pkgLog.Logger) repository.TaskRepository {
	return &implRepository{client: client, l: l}
}

func (r *implRepository) Query(ctx context.Context, limit int) []model.Task {
	if limit <= 0 {
		limit = repository.DefaultQueryLimit
	}

	pages, err := r.client.QueryDatabase(ctx, limit)
	if err != nil {
		r.l.Errorf(ctx, "notion repository: query failed: %v", err)
		return []model.Task{}
	}

	tasks := make([]model.Task, 0, len(pages))
	for _, p := range pages {
		tasks = append(tasks, pageToTask(p))
	}
	return tasks
}

func (r *implRepository) Create(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	if strings.TrimSpace(opt.Name) == "" {
		return model.Task{}, ErrEmptyName
	}

	priority := opt.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	props := pkgNotion.Properties{
		Task: &pkgNotion.PropTitle{
			Title: []pkgNotion.RichText{{Text: &pkgNotion.TextContent{Content: opt.Name}}},
		},
		Status:   &pkgNotion.PropStatus{Status: &pkgNotion.SelectOption{Name: string(model.StatusNotStarted)}},
		Priority: &pkgNotion.PropSelect{Select: &pkgNotion.SelectOption{Name: string(priority)}},
	}
	if opt.DueDate != nil {
		props.DueDate = &pkgNotion.PropDate{Date: &pkgNotion.DateValue{Start: opt.DueDate.Format("2006-01-02")}}
	}
	if opt.Project != "" {
		props.Project = &pkgNotion.PropRichText{
			RichText: []pkgNotion.RichText{{Text: &pkgNotion.TextContent{Content: opt.Project}}},
		}
	}

	page, err := r.client.CreatePage(ctx, props)
	if err != nil {
		r.l.Errorf(ctx, "notion repository: create failed: %v", err)
		return model.Task{}, err
	}
	return pageToTask(*page), nil
}

func (r *implRepository) FindByName(ctx context.Context, name string) (model.Task, bool, error) {
	pages, err := r.client.QueryDatabase(ctx, repository.DefaultQueryLimit)
	if err != nil {
		return model.Task{}, false, err
	}

	target := strings.ToLower(strings.TrimSpace(name))
	for _, p := range pages {
		title := p.Properties.Task.PlainTitle()
		if title != "" && strings.ToLower(strings.TrimSpace(title)) == target {
			return pageToTask(p), true, nil
		}
	}
	return model.Task{}, false, nil
}

func (r *implRepository) UpdateStatus(ctx context.Context, recordID string, status model.Status) error {
	props := pkgNotion.Properties{
		Status: &pkgNotion.PropStatus{Status: &pkgNotion.SelectOption{Name: string(status)}},
	}
	return r.client.UpdatePageProperties(ctx, recordID, props)
}

func (r *implRepository) UpdateDueDate(ctx context.Context, recordID string, due time.Time) error {
	props := pkgNotion.Properties{
		DueDate: &pkgNotion.PropDate{Date: &pkgNotion.DateValue{Start: due.Format("2006-01-02")}},
	}
	return r.client.UpdatePageProperties(ctx, recordID, props)
}

func (r *implRepository) Archive(ctx context.Context, recordID string) error {
	return r.client.ArchivePage(ctx, recordID)
}

// pageToTask converts a Notion page property bag into the internal model.
func pageToTask(p pkgNotion.Page) model.Task {
	t := model.Task{
		ID:       p.ID,
		Name:     p.Properties.Task.PlainTitle(),
		Priority: model.PriorityMedium,
	}
	if t.Name == "" {
		t.Name = "Untitled"
	}

	if p.Properties.Status != nil && p.Properties.Status.Status != nil {
		if status, ok := model.NormalizeStatus(p.Properties.Status.Status.Name); ok {
			t.Status = status
		} else {
			t.Status = model.Status(p.Properties.Status.Status.Name)
		}
	}
	if p.Properties.Priority != nil && p.Properties.Priority.Select != nil {
		t.Priority = model.NormalizePriority(p.Properties.Priority.Select.Name)
	}
	if p.Properties.DueDate != nil && p.Properties.DueDate.Date != nil {
		start := p.Properties.DueDate.Date.Start
		if len(start) >= 10 {
			if due, err := time.Parse("2006-01-02", start[:10]); err == nil {
				t.DueDate = &due
			}
		}
	}
	if p.Properties.Project != nil && len(p.Properties.Project.RichText) > 0 {
		rt := p.Properties.Project.RichText[0]
		if rt.PlainText != "" {
			t.Project = rt.PlainText
		} else if rt.Text != nil {
			t.Project = rt.Text.Content
		}
	}
	return t
}
