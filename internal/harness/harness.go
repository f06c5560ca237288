package harness

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/catalog"
	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/store"
)

// Harness executes scenario steps against one store.
type Harness struct {
	store   *store.Store
	catalog *catalog.Service
	logger  *zap.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database, seeded when the scenario asks for it
// 2. Execute setup steps (any failure aborts the run)
// 3. Execute flow steps with expect validation
// 4. Read the final table and evaluate assertions
//
// The returned error reports a broken run; failed expectations are recorded
// in Result.Errors instead.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if scenario.Seed {
		seeds, err := catalog.DefaultProducts()
		if err != nil {
			return nil, fmt.Errorf("failed to load default products: %w", err)
		}
		if _, err := st.Initialize(ctx, seeds); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	logger := zap.NewNop()
	h := &Harness{
		store:   st,
		catalog: catalog.New(st, logger),
		logger:  logger,
	}

	result := NewResult()

	for i, step := range scenario.Setup {
		event, err := h.execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("setup step %d (%s): %w", i, step.Op, err)
		}
		result.addEvent(event)
	}

	for i, step := range scenario.Flow {
		event, opErr := h.execute(ctx, step)
		event = result.addEvent(event)
		for _, msg := range checkExpect(step, event, opErr) {
			result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Op, msg))
		}
		h.logger.Debug("flow step completed",
			zap.Int("step", i),
			zap.String("op", step.Op),
			zap.Int64("seq", event.Seq),
		)
	}

	final, err := st.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read final table: %w", err)
	}
	result.Final = final

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// execute runs one step through the catalog service. The returned event is
// filled in even when the operation fails.
func (h *Harness) execute(ctx context.Context, step Step) (TraceEvent, error) {
	event := TraceEvent{Op: step.Op, ID: step.ID, Term: step.Term}
	err := h.apply(ctx, step, &event)
	if err != nil {
		event.Error = err.Error()
	}
	return event, err
}

func (h *Harness) apply(ctx context.Context, step Step, event *TraceEvent) error {
	switch step.Op {
	case OpInsert:
		p := *step.Product
		event.Name = p.Name
		if err := p.Validate(); err != nil {
			return err
		}
		id, err := h.catalog.Insert(ctx, p)
		if err != nil {
			return err
		}
		event.ID = id
		return nil

	case OpUpdate:
		p := *step.Product
		p.ID = step.ID
		event.Name = p.Name
		if err := p.Validate(); err != nil {
			return err
		}
		return h.catalog.Update(ctx, p)

	case OpDelete:
		return h.catalog.Delete(ctx, step.ID)

	case OpGet:
		p, err := h.catalog.Get(ctx, step.ID)
		if err != nil {
			return err
		}
		event.Name = p.Name
		return nil

	case OpList:
		products, err := h.catalog.List(ctx)
		event.Names = names(products)
		return err

	case OpSearchName:
		products, err := h.catalog.SearchByName(ctx, step.Term)
		event.Names = names(products)
		return err

	case OpSearchColor:
		products, err := h.catalog.SearchByColor(ctx, step.Term)
		event.Names = names(products)
		return err

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// checkExpect compares a step outcome with its expect clause. A step without
// one must succeed.
func checkExpect(step Step, event TraceEvent, opErr error) []string {
	exp := step.Expect
	if exp == nil || exp.Error == "" {
		if opErr != nil {
			return []string{fmt.Sprintf("unexpected error: %v", opErr)}
		}
	}
	if exp == nil {
		return nil
	}

	var errs []string
	if exp.Error != "" {
		switch {
		case opErr == nil:
			errs = append(errs, fmt.Sprintf("expected error containing %q, got success", exp.Error))
		case !strings.Contains(opErr.Error(), exp.Error):
			errs = append(errs, fmt.Sprintf("expected error containing %q, got %q", exp.Error, opErr.Error()))
		}
	}
	if exp.ID != 0 && event.ID != exp.ID {
		errs = append(errs, fmt.Sprintf("expected id %d, got %d", exp.ID, event.ID))
	}
	if exp.Name != "" && product.NormalizeText(exp.Name) != product.NormalizeText(event.Name) {
		errs = append(errs, fmt.Sprintf("expected name %q, got %q", exp.Name, event.Name))
	}
	if exp.Names != nil && !equalNames(exp.Names, event.Names) {
		errs = append(errs, fmt.Sprintf("expected names %q, got %q", exp.Names, event.Names))
	}
	return errs
}

func names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func equalNames(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if product.NormalizeText(expected[i]) != product.NormalizeText(actual[i]) {
			return false
		}
	}
	return true
}
