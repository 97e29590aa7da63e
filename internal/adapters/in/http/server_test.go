package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "routing/internal/adapters/in/http"
	"routing/internal/adapters/out/tsplib"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"
	"routing/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solvedPlan = `{
  "name": "A-n3-k1",
  "time_windowed": false,
  "distance_matrix": [],
  "customers_vec": [
    {"id": 1, "name": "D", "latitude": 0, "longitude": 0, "demand": null},
    {"id": 2, "name": "A", "latitude": 3, "longitude": 0, "demand": 4},
    {"id": 3, "name": "B", "latitude": 3, "longitude": 4, "demand": 6}
  ],
  "depot_vec": [
    {"id": 1, "name": "D", "latitude": 0, "longitude": 0, "demand": null}
  ],
  "vehicles": [
    {"depot": {"vec_id": 0}, "work_day_start": 0, "work_day_end": 100,
     "capacity": 10, "customers": [{"vec_id": 1}, {"vec_id": 2}], "max_stops": 2}
  ]
}`

const instance = `NAME : T-n3-k2
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 30
NODE_COORD_SECTION
1 0 0 D
2 3 0 A
3 3 4 B
DEMAND_SECTION
1 0
2 5
3 7
DEPOT_SECTION
0
-1
EOF
`

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	matrices := services.NewMatrixBuilder()
	server := apihttp.NewServer(
		commands.NewBuildPlanFromPayloadCommandHandler(matrices),
		commands.NewBuildPlanFromTextCommandHandler(tsplib.NewReader(), matrices),
		queries.NewGetPlanReportQueryHandler(),
		[]string{"https://planner.example"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	e := echo.New()
	require.NoError(t, server.Register(t.Context(), e))
	return e
}

func serve(t *testing.T, e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apihttp.Error {
	t.Helper()
	var body apihttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	rec := serve(t, newEcho(t), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_GetOpenAPI(t *testing.T) {
	rec := serve(t, newEcho(t), http.MethodGet, "/api/v1/openapi.json", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestServer_CreatePlan(t *testing.T) {
	t.Run("should report a solved plan with trips", func(t *testing.T) {
		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/plans", echo.MIMEApplicationJSON, solvedPlan)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var report queries.GetPlanReportQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "A-n3-k1", report.Name)
		assert.True(t, report.Solved)
		assert.InDelta(t, 12.0, report.TotalDistance, 1e-9)
		assert.Equal(t, 2, report.UniqueStops)
		require.Len(t, report.Trips, 1)
		assert.Equal(t, []string{"D", "A", "B", "D"}, report.Trips[0].Stops)
		assert.InDelta(t, 10.0, report.Trips[0].Demand, 0)
	})

	t.Run("should reject a body that breaks the contract", func(t *testing.T) {
		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/plans", echo.MIMEApplicationJSON, `{"name": "x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
	})

	t.Run("should reject a vehicle referencing an unknown customer", func(t *testing.T) {
		body := strings.Replace(solvedPlan, `{"vec_id": 2}]`, `{"vec_id": 7}]`, 1)

		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/plans", echo.MIMEApplicationJSON, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "reference out of range")
	})
}

func TestServer_ImportInstance(t *testing.T) {
	t.Run("should report an unsolved plan overview", func(t *testing.T) {
		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/instances", echo.MIMETextPlain, instance)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var report queries.GetPlanReportQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.False(t, report.Solved)
		assert.Equal(t, 3, report.Points)
		assert.Equal(t, 1, report.Depots)
		assert.Equal(t, 2, report.Vehicles)
		assert.Empty(t, report.Trips)
	})

	t.Run("should return the cached report for repeated text", func(t *testing.T) {
		e := newEcho(t)

		first := serve(t, e, http.MethodPost, "/api/v1/instances", echo.MIMETextPlain, instance)
		second := serve(t, e, http.MethodPost, "/api/v1/instances", echo.MIMETextPlain, instance)

		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, http.StatusOK, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("should reject malformed metadata", func(t *testing.T) {
		body := strings.Replace(instance, "CAPACITY : 30\n", "", 1)

		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/instances", echo.MIMETextPlain, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "CAPACITY")
	})

	t.Run("should reject an empty body", func(t *testing.T) {
		rec := serve(t, newEcho(t), http.MethodPost, "/api/v1/instances", echo.MIMETextPlain, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CORS(t *testing.T) {
	t.Run("should allow the configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://planner.example")
		rec := httptest.NewRecorder()

		newEcho(t).ServeHTTP(rec, req)

		assert.Equal(t, "https://planner.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should not allow other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		rec := httptest.NewRecorder()

		newEcho(t).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
