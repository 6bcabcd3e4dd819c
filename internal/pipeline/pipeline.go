// Package pipeline sequences a full ETL run: extraction, staging,
// schema reset, load and finalization, with per-table failure isolation
// everywhere except extraction.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/dmitrijs2005/trelloetl/internal/postgres"
	"github.com/dmitrijs2005/trelloetl/internal/runlog"
	"github.com/dmitrijs2005/trelloetl/internal/staging"
	"github.com/google/uuid"
)

// State names one orchestrator phase. A run walks
// INIT → EXTRACT → STAGE → RESET_SCHEMA → LOAD → FINALIZE → DONE;
// only EXTRACT can move to FAILED, which aborts everything downstream.
type State string

const (
	StateInit        State = "INIT"
	StateExtract     State = "EXTRACT"
	StateStage       State = "STAGE"
	StateResetSchema State = "RESET_SCHEMA"
	StateLoad        State = "LOAD"
	StateFinalize    State = "FINALIZE"
	StateDone        State = "DONE"
	StateFailed      State = "FAILED"
)

// DatasetExtractor produces the full dataset for one run.
type DatasetExtractor interface {
	Run(ctx context.Context) (*models.Dataset, error)
}

// Pipeline owns the collaborators of one run. All clients are
// constructed by the caller and injected; nothing here opens
// connections at package scope.
type Pipeline struct {
	extractor DatasetExtractor
	store     staging.Store
	runDB     postgres.Database
	adminDB   postgres.Database
	runLog    *runlog.Log
	logger    logging.Logger
	now       func() time.Time

	state State
}

// New wires a Pipeline. runDB is the load credential set, adminDB the
// table-creation one.
func New(extractor DatasetExtractor, store staging.Store, runDB, adminDB postgres.Database, runLog *runlog.Log, logger logging.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		store:     store,
		runDB:     runDB,
		adminDB:   adminDB,
		runLog:    runLog,
		logger:    logger,
		now:       time.Now,
		state:     StateInit,
	}
}

// transition records the state change in both the process log and the
// durable run log.
func (p *Pipeline) transition(ctx context.Context, next State, msg string) {
	p.state = next
	p.logger.Info(ctx, "pipeline state", "state", string(next))
	p.runLog.Append(ctx, msg)
}

// Run executes one full pipeline pass. It returns an error only for an
// extraction failure; every later failure is logged and the run
// proceeds degraded. The run log always receives a start and an end
// entry.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.New().String()
	p.runLog.Append(ctx, fmt.Sprintf("Trello ETL run %s started.", runID))

	p.transition(ctx, StateExtract, "Extraction started.")
	dataset, err := p.extractor.Run(ctx)
	if err != nil {
		p.state = StateFailed
		p.logger.Error(ctx, "extraction failed", "error", err)
		p.runLog.Append(ctx, fmt.Sprintf("ERROR: extraction failed: %v", err))
		p.runLog.End(ctx, "Trello ETL run aborted.")
		return fmt.Errorf("pipeline: extract: %w", err)
	}

	p.transition(ctx, StateStage, "Staging started.")
	p.stage(ctx, dataset)
	p.auditStaging(ctx)

	p.transition(ctx, StateResetSchema, "Schema reset started.")
	resetFailed := false
	if err := p.adminDB.ExecScript(ctx, postgres.ResetScript()); err != nil {
		resetFailed = true
		p.logger.Error(ctx, "schema reset failed", "error", err)
		p.runLog.Append(ctx, fmt.Sprintf("ERROR: schema reset failed, skipping load: %v", err))
	}

	if !resetFailed {
		p.transition(ctx, StateLoad, "Load started.")
		p.load(ctx)
	}

	p.transition(ctx, StateFinalize, "Finalization started.")
	if err := p.runDB.ExecScript(ctx, postgres.FinalizeScript()); err != nil {
		p.logger.Error(ctx, "finalize script failed", "error", err)
		p.runLog.Append(ctx, fmt.Sprintf("ERROR: finalize script failed: %v", err))
	}

	p.state = StateDone
	p.runLog.End(ctx, "Trello ETL run finished.")
	return nil
}

// stage serializes and uploads every table. One table's failure is
// logged and the rest still go out.
func (p *Pipeline) stage(ctx context.Context, dataset *models.Dataset) {
	for _, table := range dataset.Tables() {
		path := staging.ObjectPath(table.Name)
		data, err := staging.EncodeTable(table)
		if err == nil {
			err = p.store.Write(ctx, path, data)
		}
		if err != nil {
			p.logger.Error(ctx, "staging failed", "table", table.Name, "error", err)
			p.runLog.Append(ctx, fmt.Sprintf("ERROR: staging file %s failed: %v", path, err))
			continue
		}
		p.logger.Info(ctx, "table staged", "table", table.Name, "rows", len(table.Rows))
	}
}

// auditStaging flags staged files whose upload date is not today.
func (p *Pipeline) auditStaging(ctx context.Context) {
	stale, err := staging.AuditFreshness(ctx, p.store, p.now())
	if err != nil {
		p.logger.Warn(ctx, "staging freshness audit failed", "error", err)
		return
	}
	for _, path := range stale {
		p.logger.Warn(ctx, "staged file upload date does not match today", "path", path)
	}
}

// load reads every staged table back and bulk-inserts it. One table's
// failure is logged and the rest still load.
func (p *Pipeline) load(ctx context.Context) {
	for _, name := range models.TableNames {
		path := staging.ObjectPath(name)
		data, err := p.store.Read(ctx, path)
		if err != nil {
			p.reportLoadFailure(ctx, path, name, err)
			continue
		}
		table, err := staging.DecodeTable(name, data)
		if err != nil {
			p.reportLoadFailure(ctx, path, name, err)
			continue
		}
		if err := p.runDB.InsertRows(ctx, table.Name, table.Columns, table.Rows); err != nil {
			p.reportLoadFailure(ctx, path, name, err)
			continue
		}
		p.logger.Info(ctx, "table loaded", "table", name, "rows", len(table.Rows))
	}
}

func (p *Pipeline) reportLoadFailure(ctx context.Context, path, table string, err error) {
	p.logger.Error(ctx, "load failed", "table", table, "error", err)
	p.runLog.Append(ctx, fmt.Sprintf("ERROR: file %s failed to load into table %s: %v", path, table, err))
}
