package cascade

import (
	"fmt"
	"sort"

	"github.com/tsawler/tally/model"
	"github.com/tsawler/tally/quality"
	"github.com/tsawler/tally/rowscan"
	"github.com/tsawler/tally/segtrack"
	"github.com/tsawler/tally/tables"
)

// Engine is the shared per-attempt pipeline: structure recovery, row
// interpretation, segment tracking, scoring. It holds only configuration;
// all per-document state (carry, tracker) is created per call, so one
// engine serves any number of documents, in parallel if the caller wants.
type Engine struct {
	tables   *tables.Builder
	rows     *rowscan.Interpreter
	segments segtrack.Config
	lookback int
}

// NewEngine creates an engine with default configuration for all stages.
func NewEngine() *Engine {
	return &Engine{
		tables:   tables.NewBuilder(),
		rows:     rowscan.NewInterpreter(),
		segments: segtrack.DefaultConfig(),
		lookback: rowscan.DefaultConfig().LabelLookback,
	}
}

// Configure replaces the stage configurations.
func (e *Engine) Configure(tc tables.Config, rc rowscan.Config, sc segtrack.Config) {
	e.tables.Configure(tc)
	e.rows.Configure(rc)
	e.segments = sc
	e.lookback = rc.LabelLookback
}

// ExtractTokens runs the token-cluster path over per-page token lists and
// returns a scored attempt. Empty or malformed input yields an empty
// attempt with confidence 0; it never fails.
func (e *Engine) ExtractTokens(pages map[int][]model.Token, src model.Source, backend string) *model.Attempt {
	grids := make([]*model.Grid, 0, len(pages))
	for _, page := range sortedKeys(pages) {
		grids = append(grids, e.tables.FromTokens(pages[page], page))
	}
	return e.interpret(grids, src, backend)
}

// ExtractRows runs the structured path over pre-delimited tables (each one
// table's rows) and returns a scored attempt.
func (e *Engine) ExtractRows(tbls [][][]string, src model.Source, backend string) *model.Attempt {
	grids := make([]*model.Grid, 0, len(tbls))
	for _, rows := range tbls {
		grids = append(grids, e.tables.FromRows(rows, 0))
	}
	return e.interpret(grids, src, backend)
}

// ExtractGrids scores grids the caller built directly.
func (e *Engine) ExtractGrids(grids []*model.Grid, src model.Source, backend string) *model.Attempt {
	return e.interpret(grids, src, backend)
}

// ScoreRecords wraps pre-structured records (a collaborator that returns
// records directly) into a scored attempt. Item-column confidence is taken
// as the item ratio itself, since no column detection happened.
func (e *Engine) ScoreRecords(records []model.Record, backend string) *model.Attempt {
	m := quality.Compute(records)
	attempt := &model.Attempt{
		Backend:    backend,
		Records:    records,
		Confidence: quality.Confidence(m, m.ItemRatio, false, quality.Hierarchical(records)),
	}
	attempt.Note(fmt.Sprintf("pre-structured: %d records", len(records)))
	return attempt
}

// interpret walks the grids in order with one shared carry and segment
// tracker, then scores the combined record list.
func (e *Engine) interpret(grids []*model.Grid, src model.Source, backend string) *model.Attempt {
	attempt := &model.Attempt{Backend: backend}

	carry := rowscan.NewCarry()
	tracker := segtrack.NewTracker()
	tracker.Configure(e.segments)

	var records []model.Record
	itemConfidence := 0.0
	headerSeen := false

	for _, grid := range grids {
		start := len(records)
		records = e.rows.Interpret(grid, src, carry, records)
		tracker.ObserveTable(records[start:], grid.Signature(), carry.Label(e.lookback))

		if grid.ItemConfidence > itemConfidence {
			itemConfidence = grid.ItemConfidence
		}
		if grid.HeaderRow >= 0 {
			headerSeen = true
		}
		attempt.Note(fmt.Sprintf("page %d: %dx%d grid, %d roles, %d records",
			grid.Page, grid.RowCount(), grid.ColCount(), len(grid.Roles), len(records)-start))
	}

	m := quality.Compute(records)
	attempt.Records = records
	attempt.Confidence = quality.Confidence(m, itemConfidence, headerSeen, quality.Hierarchical(records))
	return attempt
}

func sortedKeys(pages map[int][]model.Token) []int {
	keys := make([]int, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
