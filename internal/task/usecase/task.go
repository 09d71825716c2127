package usecase

import (
	"context"
	"fmt"
	"strings"

	"kairos/internal/model"
	"kairos/internal/recommend"
	"kairos/internal/task/repository"
	"kairos/internal/view"
)

const addUsage = "Usage: /add <name> [high|medium|low] due:<date> project:<name>"

func (uc *implUsecase) Add(ctx context.Context, text string) (string, error) {
	draft := uc.parser.ParseTaskInput(text)
	if draft.Name == "" {
		return addUsage, nil
	}

	created, err := uc.repo.Create(ctx, repository.CreateTaskOptions{
		Name:     draft.Name,
		Priority: draft.Priority,
		DueDate:  draft.DueDate,
		Project:  draft.Project,
	})
	if err != nil {
		uc.l.Errorf(ctx, "task.Add: %v", err)
		return "", err
	}

	msg := fmt.Sprintf("Added %q (%s priority)", created.Name, created.Priority)
	if created.DueDate != nil {
		msg += ", due " + created.DueDate.Format("Jan 02, 2006")
	}
	if created.Project != "" {
		msg += ", project " + created.Project
	}
	return msg, nil
}

func (uc *implUsecase) List(ctx context.Context, filter view.DateFilter, showAll bool) (string, error) {
	tasks := uc.repo.Query(ctx, repository.DefaultQueryLimit)
	return uc.view.FormatTaskList(tasks, filter, showAll), nil
}

func (uc *implUsecase) Done(ctx context.Context, name string) (string, error) {
	return uc.UpdateStatus(ctx, name, string(model.StatusCompleted))
}

func (uc *implUsecase) UpdateStatus(ctx context.Context, name, status string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Which task? Give me its name.", nil
	}
	normalized, ok := model.NormalizeStatus(status)
	if !ok {
		return fmt.Sprintf("Unknown status %q. Use: Not started, In progress or Completed.", status), nil
	}

	t, found, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "task.UpdateStatus find: %v", err)
		return "", err
	}
	if !found {
		return fmt.Sprintf("Couldn't find a task named %q.", name), nil
	}

	if err := uc.repo.UpdateStatus(ctx, t.ID, normalized); err != nil {
		uc.l.Errorf(ctx, "task.UpdateStatus update: %v", err)
		return "", err
	}
	if normalized == model.StatusCompleted {
		return fmt.Sprintf("Done! %q is completed.", t.Name), nil
	}
	return fmt.Sprintf("%q moved to %s.", t.Name, normalized), nil
}

func (uc *implUsecase) Remove(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Which task? Give me its name.", nil
	}

	t, found, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "task.Remove find: %v", err)
		return "", err
	}
	if !found {
		return fmt.Sprintf("Couldn't find a task named %q.", name), nil
	}

	if err := uc.repo.Archive(ctx, t.ID); err != nil {
		uc.l.Errorf(ctx, "task.Remove archive: %v", err)
		return "", err
	}
	return fmt.Sprintf("Removed %q.", t.Name), nil
}

func (uc *implUsecase) UpdateDueDate(ctx context.Context, name, due string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Which task? Give me its name.", nil
	}
	parsed := uc.parser.ParseTaskInput("x due:" + strings.TrimSpace(due))
	if parsed.DueDate == nil {
		return fmt.Sprintf("Couldn't read the date %q. Try today, tomorrow, nextweek or YYYY-MM-DD.", due), nil
	}

	t, found, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "task.UpdateDueDate find: %v", err)
		return "", err
	}
	if !found {
		return fmt.Sprintf("Couldn't find a task named %q.", name), nil
	}

	if err := uc.repo.UpdateDueDate(ctx, t.ID, *parsed.DueDate); err != nil {
		uc.l.Errorf(ctx, "task.UpdateDueDate update: %v", err)
		return "", err
	}
	return fmt.Sprintf("%q is now due %s.", t.Name, parsed.DueDate.Format("Jan 02, 2006")), nil
}

func (uc *implUsecase) Recommend(ctx context.Context) (string, error) {
	tasks := uc.repo.Query(ctx, repository.DefaultQueryLimit)
	top := uc.scorer.Recommend(tasks, recommend.DefaultLimit)
	return recommend.FormatRecommendations(top), nil
}

func (uc *implUsecase) ImportSchedule(ctx context.Context, text string) (string, error) {
	drafts := uc.parser.ParseSchedule(text)
	if len(drafts) == 0 {
		return "No task lines found. Each line needs a due: marker, e.g.\nMath homework due:2026-09-01", nil
	}

	created := 0
	var failures []string
	for _, d := range drafts {
		_, err := uc.repo.Create(ctx, repository.CreateTaskOptions{
			Name:     d.Name,
			Priority: d.Priority,
			DueDate:  d.DueDate,
			Project:  d.Project,
		})
		if err != nil {
			uc.l.Warnf(ctx, "task.ImportSchedule create %q: %v", d.Name, err)
			failures = append(failures, d.Name)
			continue
		}
		created++
	}

	msg := fmt.Sprintf("Imported %d task(s).", created)
	if len(failures) > 0 {
		msg += " Failed: " + strings.Join(failures, ", ")
	}
	return msg, nil
}
