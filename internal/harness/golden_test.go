package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden files live in testdata/golden. Regenerate them with:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden(t *testing.T) {
	scenarios, err := LoadScenarios(scenarioDir)
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestTraceSnapshot_Marshal(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName: "escape",
		Trace:        []TraceEvent{{Seq: 1, Op: OpList}},
	}

	data, err := snapshot.Marshal()
	require.NoError(t, err)

	assert.Equal(t, "{\n"+
		"  \"scenario_name\": \"escape\",\n"+
		"  \"trace\": [\n"+
		"    {\n"+
		"      \"seq\": 1,\n"+
		"      \"op\": \"list\"\n"+
		"    }\n"+
		"  ],\n"+
		"  \"final\": null\n"+
		"}\n", string(data))
}

func TestTraceSnapshot_KeepsURLsReadable(t *testing.T) {
	snapshot := TraceSnapshot{ScenarioName: "a&b<c>"}

	data, err := snapshot.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a&b<c>"`)
}
