package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultImportSchedule runs the import every thirty seconds.
const DefaultImportSchedule = "*/30 * * * * *"

const instancePattern = "*.vrp"

// InstanceImportJob builds a plan from every new instance file in an inbox
// directory and publishes it.
//
// A file is imported once. Files that fail to parse are not retried; files
// whose plan could not be published are retried on the next run.
type InstanceImportJob struct {
	handler   commands.BuildPlanFromFileCommandHandler
	publisher ports.PlanPublisher
	inbox     string
	schedule  string

	mu   sync.Mutex
	seen map[string]struct{}

	cron   *cron.Cron
	logger *slog.Logger
}

// NewInstanceImportJob creates a job scanning inbox on schedule, a cron
// expression with a seconds field. An empty schedule means DefaultImportSchedule.
func NewInstanceImportJob(
	handler commands.BuildPlanFromFileCommandHandler,
	publisher ports.PlanPublisher,
	inbox string,
	schedule string,
	logger *slog.Logger,
) *InstanceImportJob {
	if schedule == "" {
		schedule = DefaultImportSchedule
	}
	return &InstanceImportJob{
		handler:   handler,
		publisher: publisher,
		inbox:     inbox,
		schedule:  schedule,
		seen:      make(map[string]struct{}),
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "instance_import_job", "inbox", inbox),
	}
}

// Start schedules the import.
func (j *InstanceImportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Instance import failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Instance import job started", "schedule", j.schedule)
	return nil
}

// Stop stops the import job.
func (j *InstanceImportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Instance import job stopped")
}

// RunOnce imports the files not seen before and returns how many plans were
// published. Failures of single files are joined into the returned error.
func (j *InstanceImportJob) RunOnce(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	paths, err := filepath.Glob(filepath.Join(j.inbox, instancePattern))
	if err != nil {
		return 0, fmt.Errorf("scan inbox: %w", err)
	}
	sort.Strings(paths)

	var (
		published int
		failures  []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		if _, ok := j.seen[path]; ok {
			continue
		}

		if err := j.importFile(ctx, path); err != nil {
			failures = append(failures, err)
			continue
		}
		published++
	}

	return published, errors.Join(failures...)
}

func (j *InstanceImportJob) importFile(ctx context.Context, path string) error {
	cmd, err := commands.NewBuildPlanFromFileCommand(path)
	if err != nil {
		return err
	}
	p, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.seen[path] = struct{}{}
		return err
	}

	if err := j.publisher.Publish(ctx, p); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	j.seen[path] = struct{}{}
	j.logger.InfoContext(ctx, "Instance imported",
		"file", filepath.Base(path),
		"plan", p.Name(),
		"points", len(p.Points()),
		"vehicles", len(p.Vehicles()),
	)
	return nil
}
