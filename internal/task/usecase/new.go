package usecase

import (
	"time"

	"kairos/internal/recommend"
	"kairos/internal/task"
	"kairos/internal/task/parser"
	"kairos/internal/task/repository"
	"kairos/internal/view"
	"kairos/pkg/log"
)

type implUsecase struct {
	l      log.Logger
	repo   repository.TaskRepository
	parser *parser.Parser
	view   *view.Formatter
	scorer *recommend.Scorer
	now    func() time.Time
}

// New creates the task use case.
func New(l log.Logger, repo repository.TaskRepository, p *parser.Parser,
	v *view.Formatter, scorer *recommend.Scorer) task.UseCase {
	return &implUsecase{
		l:      l,
		repo:   repo,
		parser: p,
		view:   v,
		scorer: scorer,
		now:    time.Now,
	}
}
