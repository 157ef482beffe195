package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docu3c/autocodex/schema"
)

func TestHalsteadVolume(t *testing.T) {
	assert.Equal(t, 0.0, halsteadVolume(""))
	assert.Greater(t, halsteadVolume("x = a + b * c"), 0.0)

	// More tokens and a larger vocabulary mean a larger volume.
	small := halsteadVolume("x = 1")
	large := halsteadVolume("x = a + b * c / d - e % f && g || h")
	assert.Greater(t, large, small)
}

func TestMaintainabilityIndex(t *testing.T) {
	simple := "func add(a, b int) int {\n\treturn a + b\n}\n"
	simpleLines := CountLines(schema.GoLang, simple)
	simpleMI := MaintainabilityIndex(simple, 1, simpleLines)

	assert.GreaterOrEqual(t, simpleMI, 0.0)
	assert.LessOrEqual(t, simpleMI, 100.0)

	// A long branchy file should score lower than a tiny helper.
	var sb strings.Builder
	sb.WriteString("func big(n int) int {\n")
	for i := 0; i < 200; i++ {
		sb.WriteString("\tif n > 1 {\n\t\tn = n*3 + 1\n\t}\n")
	}
	sb.WriteString("\treturn n\n}\n")
	big := sb.String()
	bigLines := CountLines(schema.GoLang, big)
	bigMI := MaintainabilityIndex(big, CyclomaticComplexity(schema.GoLang, big), bigLines)

	assert.Less(t, bigMI, simpleMI)
}

func TestMaintainabilityIndexEmptyFile(t *testing.T) {
	mi := MaintainabilityIndex("", 1, schema.LineCount{})
	assert.Equal(t, 100.0, mi)
}
