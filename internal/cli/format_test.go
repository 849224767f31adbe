package cli

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/lifeplan/internal/projection"
)

func TestFormatYen(t *testing.T) {
	cases := map[float64]string{
		0:          "¥0",
		999:        "¥999",
		1234567:    "¥1,234,567",
		-500:       "-¥500",
		1234567.6:  "¥1,234,568",
		-1_000_000: "-¥1,000,000",
	}
	for in, want := range cases {
		if got := FormatYen(in); got != want {
			t.Fatalf("FormatYen(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatYen(math.NaN()); got != "NaN" {
		t.Fatalf("FormatYen(NaN) = %q", got)
	}
}

func TestFormatMan(t *testing.T) {
	cases := map[float64]string{
		9_999:       "¥9,999",
		10_000:      "1万",
		12_345_678:  "1,235万",
		-2_500_000:  "-250万",
		123_456_789: "1.23億",
	}
	for in, want := range cases {
		if got := FormatMan(in); got != want {
			t.Fatalf("FormatMan(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDeltaAndPercent(t *testing.T) {
	assert.Equal(t, "+¥1,000", FormatDelta(3_000, 2_000))
	assert.Equal(t, "-¥1,000", FormatDelta(2_000, 3_000))
	assert.Equal(t, "+¥0", FormatDelta(5, 5))
	assert.Equal(t, "2.0%", FormatPercent(2))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-", FormatAge(0))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))

	err := fmt.Errorf("loading: %w", WrapExitError(ExitInputError, "bad plan", errors.New("eof")))
	assert.Equal(t, ExitInputError, ExitCode(err))
	assert.Equal(t, "loading: bad plan: eof", err.Error())
	assert.Equal(t, "nope", NewExitError(ExitFailure, "nope").Error())
}

func TestOutput_EmitJSON(t *testing.T) {
	var out, diag bytes.Buffer
	o := &Output{Format: "json", Writer: &out, Err: &diag}

	require.NoError(t, o.Emit(projection.Target{Age: 60, Asset: 1e7}, func() string {
		t.Fatal("text renderer called in json mode")
		return ""
	}))
	o.Logf("cache %s", "miss")

	var got projection.Target
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 60, got.Age)
	assert.Equal(t, "cache miss\n", diag.String())
}

func TestOutput_EmitTextAndQuiet(t *testing.T) {
	var out, diag bytes.Buffer
	o := &Output{Format: "text", Writer: &out, Err: &diag, Quiet: true}

	require.NoError(t, o.Emit(nil, func() string { return "hello\n" }))
	o.Logf("suppressed")
	assert.Equal(t, "hello\n", out.String())
	assert.Empty(t, diag.String())
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil))
	assert.Equal(t, "▁▁▁", RenderSparkline([]float64{0, 0, 0}))
	assert.Equal(t, "▁▅█", RenderSparkline([]float64{0, 5, 8}))
	assert.Equal(t, 4, len([]rune(RenderSparkline([]float64{-1, 0, 1, 2}))))
}

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Age", "Total"},
		Rows:    [][]string{{"30", "1,235万"}, {"31", "¥9"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	// Every line has the same display width regardless of CJK cells.
	w := 0
	for _, l := range lines {
		if w == 0 {
			w = lipgloss.Width(l)
		}
		assert.Equal(t, w, lipgloss.Width(l), "line %q", l)
	}
}
