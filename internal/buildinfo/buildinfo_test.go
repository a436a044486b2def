package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData_DefaultsToNA(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}

func TestPrintBuildData_UsesInjectedValues(t *testing.T) {
	origV, origD, origC := buildVersion, buildDate, buildCommit
	t.Cleanup(func() { buildVersion, buildDate, buildCommit = origV, origD, origC })

	buildVersion, buildDate, buildCommit = "v1.2.3", "2024-01-01", "abc123"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Contains(t, buf.String(), "Build version: v1.2.3")
	assert.Contains(t, buf.String(), "Build date: 2024-01-01")
	assert.Contains(t, buf.String(), "Build commit: abc123")
}
