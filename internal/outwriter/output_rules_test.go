package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docu3c/autocodex/schema"
)

func TestBuildRulesRenderModel(t *testing.T) {
	model := buildRulesRenderModel(sampleConfig())
	assert.Len(t, model.Languages, len(schema.AllLanguages))
	assert.Equal(t, 0.3, model.Weights.Complexity)
	assert.Equal(t, 0.4, model.Weights.IssueDensity)
}

func TestPrintRulesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRulesText(&buf, buildRulesRenderModel(sampleConfig())))

	out := buf.String()
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "Max line length:     100")
	assert.Contains(t, out, "java")
	assert.Contains(t, out, "Max complexity:      15")
	assert.Contains(t, out, "Naming (class)")
	assert.Contains(t, out, "Quality score = 0.3*complexityScore")
	assert.Contains(t, out, "171 - 5.2*ln(V)")
}

func TestPrintRulesCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, printRulesCSV(w, buildRulesRenderModel(sampleConfig())))
	w.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(schema.AllLanguages)+1)
	assert.Equal(t, []string{"language", "max_line_length", "max_function_length", "max_complexity", "max_duplication"}, records[0])
	assert.Equal(t, "python", records[1][0])
	assert.Equal(t, "100", records[1][1])
}
