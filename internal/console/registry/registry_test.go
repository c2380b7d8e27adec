package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestigesms/sms-console/internal/console/domain"
	"github.com/prestigesms/sms-console/internal/console/registry"
)

func testLines() []domain.BusinessLine {
	return []domain.BusinessLine{
		{Name: "HU Main", Number: "+36204515510"},
		{Name: "HU Secondary", Number: "+36304733451"},
		{Name: "US Line", Number: "+16692856302"},
	}
}

func TestRecommendedLine(t *testing.T) {
	reg := registry.New(testLines())

	testCases := []struct {
		name        string
		destination string
		wantNumber  string
	}{
		{name: "hungarian destination gets first HU line", destination: "+36201234567", wantNumber: "+36204515510"},
		{name: "us destination gets US line", destination: "+16692856302", wantNumber: "+16692856302"},
		{name: "other country falls back to first line", destination: "+447911123456", wantNumber: "+36204515510"},
		{name: "empty destination falls back to first line", destination: "", wantNumber: "+36204515510"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line := reg.RecommendedLine(tc.destination)
			assert.Equal(t, tc.wantNumber, line.Number)
		})
	}
}

func TestRecommendedLine_NoMatchingPrefix(t *testing.T) {
	// Only a US line configured: a Hungarian destination still gets a line.
	reg := registry.New([]domain.BusinessLine{{Name: "US Line", Number: "+16692856302"}})
	line := reg.RecommendedLine("+36201234567")
	assert.Equal(t, "+16692856302", line.Number)
}

func TestRecommendedLine_EmptyRegistry(t *testing.T) {
	reg := registry.New(nil)
	line := reg.RecommendedLine("+36201234567")
	assert.Empty(t, line.Number)
}

func TestLineFor(t *testing.T) {
	reg := registry.New(testLines())

	line, ok := reg.LineFor("+36304733451")
	require.True(t, ok)
	assert.Equal(t, "HU Secondary", line.Name)

	_, ok = reg.LineFor("+4915112345678")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	reg := registry.New(testLines())

	assert.Equal(t, "HU Main", reg.DisplayName("+36204515510"))
	// Unconfigured numbers display as-is.
	assert.Equal(t, "+4915112345678", reg.DisplayName("+4915112345678"))
}

func TestLines_ReturnsCopy(t *testing.T) {
	reg := registry.New(testLines())

	lines := reg.Lines()
	require.Len(t, lines, 3)
	lines[0].Name = "mutated"

	assert.Equal(t, "HU Main", reg.Lines()[0].Name)
}
