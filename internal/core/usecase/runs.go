package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
)

// RunManager tracks traversal runs. Each run executes on its own goroutine
// and is polled over HTTP; records live only as long as the process.
type RunManager struct {
	scan     *ScanUseCase
	apply    *ApplyUseCase
	observer ports.RunObserver
	logger   *slog.Logger

	// baseCtx detaches runs from the HTTP request that started them while
	// still tying their lifetime to the application.
	baseCtx context.Context

	mu   sync.RWMutex
	runs map[string]*runState
}

type runState struct {
	mu     sync.RWMutex
	run    domain.Run
	cancel context.CancelFunc
}

func NewRunManager(baseCtx context.Context, scan *ScanUseCase, apply *ApplyUseCase, observer ports.RunObserver, logger *slog.Logger) *RunManager {
	return &RunManager{
		scan:     scan,
		apply:    apply,
		observer: observer,
		logger:   logger,
		baseCtx:  baseCtx,
		runs:     make(map[string]*runState),
	}
}

func (m *RunManager) Start(_ context.Context, params domain.ScanParams) (domain.Run, error) {
	if err := ValidateScanDirectory(params.Directory); err != nil {
		return domain.Run{}, err
	}

	runCtx, cancel := context.WithCancel(m.baseCtx)
	state := &runState{
		run: domain.Run{
			ID:        uuid.NewString(),
			Status:    domain.RunRunning,
			Params:    params,
			StartedAt: time.Now().UTC(),
		},
		cancel: cancel,
	}

	m.mu.Lock()
	m.runs[state.run.ID] = state
	m.mu.Unlock()

	m.logger.Info("run started", "run_id", state.run.ID, "directory", params.Directory)
	go m.execute(runCtx, state)

	return state.snapshot(false), nil
}

func (m *RunManager) execute(ctx context.Context, state *runState) {
	defer state.cancel()
	if m.observer != nil {
		m.observer.RunStarted()
	}
	started := time.Now()

	result, err := m.scan.Scan(ctx, state.run.Params, state.progress)

	state.mu.Lock()
	state.run.FinishedAt = time.Now().UTC()
	switch {
	case err == nil:
		state.run.Status = domain.RunSucceeded
		state.run.Records = result.Records
		state.run.Summary = result.Summary
		state.run.Done = result.Summary.Total
		state.run.Total = result.Summary.Total
	case errors.Is(err, context.Canceled):
		state.run.Status = domain.RunCanceled
		state.run.Error = "canceled"
	default:
		state.run.Status = domain.RunFailed
		state.run.Error = err.Error()
	}
	status := state.run.Status
	files := state.run.Summary.Total
	state.mu.Unlock()

	duration := time.Since(started)
	if m.observer != nil {
		m.observer.RunFinished(string(status), duration, files)
	}
	m.logger.Info("run finished",
		"run_id", state.run.ID,
		"status", string(status),
		"files", files,
		"duration_ms", float64(duration.Microseconds())/1000.0,
	)
}

func (m *RunManager) Get(_ context.Context, runID string) (domain.Run, error) {
	state, err := m.state(runID)
	if err != nil {
		return domain.Run{}, err
	}
	return state.snapshot(true), nil
}

func (m *RunManager) Cancel(_ context.Context, runID string) error {
	state, err := m.state(runID)
	if err != nil {
		return err
	}
	state.cancel()
	m.logger.Info("run cancel requested", "run_id", runID)
	return nil
}

// ValidateName checks an edited candidate name against the rest of a
// finished run's table.
func (m *RunManager) ValidateName(_ context.Context, runID, sourcePath, candidate string) (domain.NameCheck, error) {
	state, err := m.state(runID)
	if err != nil {
		return domain.NameCheck{}, err
	}
	run := state.snapshot(true)
	if run.Status == domain.RunRunning {
		return domain.NameCheck{}, domain.WrapError(domain.ErrConflict, "validate name", errors.New("run is still in progress"))
	}

	var target *domain.FileRecord
	others := make([]string, 0, len(run.Records))
	for i := range run.Records {
		if run.Records[i].SourcePath == sourcePath {
			target = &run.Records[i]
			continue
		}
		others = append(others, run.Records[i].ProposedFilename())
	}
	if target == nil {
		return domain.NameCheck{}, domain.WrapError(domain.ErrRecordNotFound, "validate name", fmt.Errorf("path %q", sourcePath))
	}
	return CheckName(candidate, target.Extension, others), nil
}

func (m *RunManager) Apply(ctx context.Context, runID string, req domain.ApplyRequest) (domain.ApplyResult, error) {
	state, err := m.state(runID)
	if err != nil {
		return domain.ApplyResult{}, err
	}
	run := state.snapshot(true)
	if run.Status != domain.RunSucceeded {
		return domain.ApplyResult{}, domain.WrapError(domain.ErrConflict, "apply names", fmt.Errorf("run status is %s", run.Status))
	}

	result, err := m.apply.Apply(ctx, run.Records, req)
	if err != nil {
		return domain.ApplyResult{}, err
	}
	return *result, nil
}

// Shutdown cancels every run still in flight.
func (m *RunManager) Shutdown() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, state := range m.runs {
		state.cancel()
	}
}

func (m *RunManager) state(runID string) (*runState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.runs[runID]
	if !ok {
		return nil, domain.WrapError(domain.ErrRunNotFound, "lookup run", fmt.Errorf("id %q", runID))
	}
	return state, nil
}

func (s *runState) progress(done, total int) {
	s.mu.Lock()
	s.run.Done = done
	s.run.Total = total
	s.mu.Unlock()
}

// snapshot copies the run; records are detached so callers can hold them
// without racing the executing goroutine.
func (s *runState) snapshot(withRecords bool) domain.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.run
	if withRecords {
		out.Records = append([]domain.FileRecord(nil), s.run.Records...)
	} else {
		out.Records = nil
	}
	return out
}
