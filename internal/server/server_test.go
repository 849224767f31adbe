package server

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"
)

func do(s *Service, method, path string, body any) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	switch b := body.(type) {
	case nil:
	case string:
		ctx.Request.SetBodyString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		ctx.Request.SetBody(data)
	}
	s.Handler(&ctx)
	return &ctx
}

type envelope[T any] struct {
	Metadata Metadata `json:"metadata"`
	Result   T        `json:"result"`
}

func decodeEnvelope[T any](t *testing.T, ctx *fasthttp.RequestCtx) envelope[T] {
	t.Helper()
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var env envelope[T]
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func planPtr() *model.HouseholdPlan {
	p := model.DefaultPlan()
	return &p
}

// planBody builds a plan request body. goccy/go-json v0.10.5 panics
// encoding a struct whose only field is a pointer, so PlanRequest itself is
// only ever decoded.
func planBody(p *model.HouseholdPlan) map[string]any {
	return map[string]any{"plan": p}
}

func TestHealthz(t *testing.T) {
	ctx := do(New(Config{}), fasthttp.MethodGet, "/healthz", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "ok\n", string(ctx.Response.Body()))
}

func TestProject_WrapsResultInMetadata(t *testing.T) {
	s := New(Config{})
	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx := do(s, fasthttp.MethodPost, "/v1/project", planBody(planPtr()))
	env := decodeEnvelope[[]model.YearlySnapshot](t, ctx)

	_, err := uuid.Parse(env.Metadata.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, env.Metadata.Outcome)
	assert.Equal(t, "2026-04-01T09:00:00Z", env.Metadata.StartedAt)
	assert.Equal(t, int64(0), env.Metadata.DurationMs)

	want := projection.Project(model.DefaultPlan(), s.cfg.Tables)
	require.Len(t, env.Result, len(want))
	assert.Equal(t, want[0].Age, env.Result[0].Age)
	assert.Equal(t, want[len(want)-1].TotalAssets, env.Result[len(want)-1].TotalAssets)
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
}

func TestProject_DecodesRawPlanRequest(t *testing.T) {
	data, err := json.Marshal(model.DefaultPlan())
	require.NoError(t, err)

	s := New(Config{})
	ctx := do(s, fasthttp.MethodPost, "/v1/project", `{"plan":`+string(data)+`}`)
	env := decodeEnvelope[[]model.YearlySnapshot](t, ctx)

	want := projection.Project(model.DefaultPlan(), s.cfg.Tables)
	require.Len(t, env.Result, len(want))
	assert.Equal(t, want[0].TotalAssets, env.Result[0].TotalAssets)
	assert.Equal(t, OutcomeSuccess, env.Metadata.Outcome)
}

func TestSummary(t *testing.T) {
	s := New(Config{})
	env := decodeEnvelope[projection.Summary](t, do(s, fasthttp.MethodPost, "/v1/summary", planBody(planPtr())))

	want := projection.Summarize(projection.Project(model.DefaultPlan(), s.cfg.Tables))
	assert.Equal(t, want.EndAge, env.Result.EndAge)
	assert.Equal(t, want.PeakAssets, env.Result.PeakAssets)
	assert.Equal(t, want.Lifestyle, env.Result.Lifestyle)
}

func TestSolve_UsesCache(t *testing.T) {
	cache := store.NewMemoryCache(0)
	s := New(Config{Cache: cache})
	req := SolveRequest{Plan: planPtr(), Target: projection.Target{Age: 60, Asset: 300_000_000}}

	first := decodeEnvelope[SolveResult](t, do(s, fasthttp.MethodPost, "/v1/solve", req))
	assert.False(t, first.Result.Cached)
	assert.True(t, first.Result.Reached)
	assert.Positive(t, first.Result.MonthlySaving)
	assert.Equal(t, OutcomeSuccess, first.Metadata.Outcome)

	second := decodeEnvelope[SolveResult](t, do(s, fasthttp.MethodPost, "/v1/solve", req))
	assert.True(t, second.Result.Cached)
	assert.Equal(t, first.Result.MonthlySaving, second.Result.MonthlySaving)
	assert.NotEqual(t, first.Metadata.CalculationID, second.Metadata.CalculationID)

	st := s.snapshotStatus()
	assert.Equal(t, int64(2), st.Solves)
	assert.Equal(t, int64(1), st.CacheHits)
	assert.True(t, st.CacheEnabled)
}

func TestSolve_UnreachedReportsFailureOutcome(t *testing.T) {
	s := New(Config{UpperBound: 1})
	req := SolveRequest{Plan: planPtr(), Target: projection.Target{Age: 60, Asset: 1e12}}

	env := decodeEnvelope[SolveResult](t, do(s, fasthttp.MethodPost, "/v1/solve", req))
	assert.False(t, env.Result.Reached)
	assert.Equal(t, int64(0), env.Result.MonthlySaving)
	assert.Equal(t, OutcomeFailure, env.Metadata.Outcome)
}

func TestSolve_RejectsBadTarget(t *testing.T) {
	ctx := do(New(Config{}), fasthttp.MethodPost, "/v1/solve", SolveRequest{Plan: planPtr()})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCompare(t *testing.T) {
	cash := 5_000_000.0
	req := CompareRequest{Plan: planPtr(), Variant: model.Variant{Name: "windfall", Cash: &cash}}

	env := decodeEnvelope[CompareResult](t, do(New(Config{}), fasthttp.MethodPost, "/v1/compare", req))
	assert.Equal(t, "windfall", env.Result.Name)
	require.NotEmpty(t, env.Result.Rows)
	assert.Equal(t, 30, env.Result.Rows[0].Age)
	assert.Positive(t, env.Result.Rows[0].Delta)
}

func TestCompare_RejectsEmptyVariant(t *testing.T) {
	ctx := do(New(Config{}), fasthttp.MethodPost, "/v1/compare", CompareRequest{Plan: planPtr()})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCosts(t *testing.T) {
	s := New(Config{})
	env := decodeEnvelope[map[string]any](t, do(s, fasthttp.MethodGet, "/v1/costs", nil))
	assert.Contains(t, env.Result, "education")
	assert.Contains(t, env.Result, "pension")
	assert.Equal(t, s.cfg.Tables.RetirementLivingMonthly, env.Result["retirement_living_monthly"])
}

func TestErrors(t *testing.T) {
	s := New(Config{})

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"empty body", fasthttp.MethodPost, "/v1/project", nil, fasthttp.StatusBadRequest},
		{"malformed json", fasthttp.MethodPost, "/v1/project", "{", fasthttp.StatusBadRequest},
		{"unknown field", fasthttp.MethodPost, "/v1/project", `{"plan":{},"extra":1}`, fasthttp.StatusBadRequest},
		{"missing plan", fasthttp.MethodPost, "/v1/summary", `{}`, fasthttp.StatusBadRequest},
		{"wrong method", fasthttp.MethodGet, "/v1/solve", nil, fasthttp.StatusMethodNotAllowed},
		{"unknown route", fasthttp.MethodGet, "/v2/anything", nil, fasthttp.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(s, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tc.status, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestInvalidPlanListsFields(t *testing.T) {
	p := model.DefaultPlan()
	p.Primary.Employment = "astronaut"
	p.Housing.Type = "castle"

	ctx := do(New(Config{}), fasthttp.MethodPost, "/v1/project", planBody(&p))
	require.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	fields := make([]string, len(resp.Fields))
	for i, f := range resp.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "housing.type")
	assert.Contains(t, fields, "primary.employment")
}

func TestStatusCountsRequests(t *testing.T) {
	s := New(Config{})
	do(s, fasthttp.MethodGet, "/healthz", nil)
	do(s, fasthttp.MethodGet, "/nope", nil)

	ctx := do(s, fasthttp.MethodGet, "/v1/status", nil)
	var st Status
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &st))
	assert.Equal(t, int64(3), st.Requests)
	assert.Equal(t, int64(1), st.Failures)
	assert.False(t, st.CacheEnabled)
}
