package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
)

// Scenario defines a catalog scenario: operations to execute and the
// outcomes they must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed starts the scenario from the default products instead of an
	// empty table.
	Seed bool `yaml:"seed,omitempty"`

	// Setup contains operations run before the main flow.
	// Setup steps must succeed and carry no expect clause.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the main operations with expected results.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final table and the trace.
	// Supported types: final_count, final_state, trace_count, trace_order
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one catalog operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// ID targets update, delete and get.
	ID int64 `yaml:"id,omitempty"`

	// Term is the search_name / search_color substring.
	Term string `yaml:"term,omitempty"`

	// Product holds the fields written by insert and update.
	Product *product.Product `yaml:"product,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the step must simply succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the outcome of a step. Unset fields are not checked.
type Expect struct {
	// ID is the id assigned by insert.
	ID int64 `yaml:"id,omitempty"`

	// Name is the product name returned by get.
	Name string `yaml:"name,omitempty"`

	// Names are the product names returned by list or a search, in order.
	// An explicit empty list expects no results.
	Names []string `yaml:"names"`

	// Error is a substring of the expected error. When set the step must fail.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final table or the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_count": Check the number of products
	// - "final_state": Find a product by where and verify expected fields
	// - "trace_count": Check op was executed exactly N times
	// - "trace_order": Check ops appear in order
	Type string `yaml:"type"`

	// Count is the expected number (used by final_count and trace_count).
	Count int `yaml:"count,omitempty"`

	// Where selects the product by exact field values (used by final_state).
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect contains expected field values (used by final_state).
	// Subset match - only specified fields are validated.
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Op is the operation counted by trace_count.
	Op string `yaml:"op,omitempty"`

	// Ops is the expected order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// Operation names.
const (
	OpInsert      = "insert"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpGet         = "get"
	OpList        = "list"
	OpSearchName  = "search_name"
	OpSearchColor = "search_color"
)

var validOps = map[string]bool{
	OpInsert: true, OpUpdate: true, OpDelete: true, OpGet: true,
	OpList: true, OpSearchName: true, OpSearchColor: true,
}

// Assertion type constants.
const (
	AssertFinalCount = "final_count"
	AssertFinalState = "final_state"
	AssertTraceCount = "trace_count"
	AssertTraceOrder = "trace_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	// Validate setup steps (if present)
	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if step.Expect != nil {
			return fmt.Errorf("setup[%d]: expect is not allowed in setup", i)
		}
	}

	// Validate flow steps
	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(step Step) error {
	if step.Op == "" {
		return fmt.Errorf("op is required")
	}
	if !validOps[step.Op] {
		return fmt.Errorf("unknown op %q", step.Op)
	}
	switch step.Op {
	case OpInsert:
		if step.Product == nil {
			return fmt.Errorf("product is required for insert")
		}
	case OpUpdate:
		if step.Product == nil {
			return fmt.Errorf("product is required for update")
		}
		if step.ID <= 0 {
			return fmt.Errorf("id is required for update")
		}
	case OpDelete, OpGet:
		if step.ID <= 0 {
			return fmt.Errorf("id is required for %s", step.Op)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for final_count", index)
		}
	case AssertFinalState:
		if len(a.Where) == 0 {
			return fmt.Errorf("assertions[%d]: where is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
		for field := range a.Where {
			if !queryir.IsField(field) {
				return fmt.Errorf("assertions[%d]: unknown field %q in where", index, field)
			}
		}
		for field := range a.Expect {
			if !queryir.IsField(field) {
				return fmt.Errorf("assertions[%d]: unknown field %q in expect", index, field)
			}
		}
	case AssertTraceCount:
		if !validOps[a.Op] {
			return fmt.Errorf("assertions[%d]: valid op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
