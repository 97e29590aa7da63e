package payload_test

import (
	"encoding/json"
	"testing"

	"routing/internal/core/application/payload"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/domain/model/plan"
	"routing/internal/core/domain/model/point"
	"routing/internal/core/domain/model/vehicle"
	"routing/internal/core/domain/services"
	"routing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const message = `{
  "name": "A-n3-k1",
  "time_windowed": false,
  "distance_matrix": [[0, 3000], [3000, 0]],
  "customers_vec": [
    {"id": 1, "name": "D", "latitude": 0, "longitude": 0, "demand": null,
     "time_window_start": null, "time_window_end": null, "service_time": null},
    {"id": 2, "name": "A", "latitude": 3, "longitude": 0, "demand": 4,
     "time_window_start": null, "time_window_end": null, "service_time": null}
  ],
  "depot_vec": [
    {"id": 1, "name": "D", "latitude": 0, "longitude": 0, "demand": null,
     "time_window_start": null, "time_window_end": null, "service_time": null}
  ],
  "vehicles": [
    {"depot": {"vec_id": 0}, "work_day_start": 0, "work_day_end": 100,
     "capacity": 10, "customers": [{"vec_id": 1}], "max_stops": 1}
  ]
}`

func TestDecode(t *testing.T) {
	t.Run("should decode solver message", func(t *testing.T) {
		p, err := payload.Decode([]byte(message))

		require.NoError(t, err)
		assert.Equal(t, "A-n3-k1", p.Name)
		require.Len(t, p.CustomersVec, 2)
		assert.Nil(t, p.CustomersVec[0].Demand)
		require.NotNil(t, p.CustomersVec[1].Demand)
		assert.InDelta(t, 4.0, *p.CustomersVec[1].Demand, 0)
		require.Len(t, p.Vehicles, 1)
		assert.Equal(t, &payload.VecRef{VecID: 0}, p.Vehicles[0].Depot)
		assert.Equal(t, []payload.VecRef{{VecID: 1}}, p.Vehicles[0].Customers)
	})

	t.Run("should keep null customers apart from an empty list", func(t *testing.T) {
		p, err := payload.Decode([]byte(`{"vehicles": [{"customers": null}, {"customers": []}]}`))

		require.NoError(t, err)
		assert.Nil(t, p.Vehicles[0].Customers)
		assert.NotNil(t, p.Vehicles[1].Customers)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		_, err := payload.Decode([]byte(`{"name": `))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestEncode(t *testing.T) {
	c0, _ := kernel.NewCoordinates(0, 0)
	c1, _ := kernel.NewCoordinates(3, 0)
	demand := 4.0
	window, _ := kernel.NewTimeWindow(5, 50, 2)
	depotWindow, _ := kernel.NewTimeWindow(0, 100, 0)
	depot, _ := point.NewPoint(1, "D", c0, nil, &depotWindow, true)
	a, _ := point.NewPoint(2, "A", c1, &demand, &window, false)
	m, _ := kernel.NewDistanceMatrix([][]float64{{0, 3000}, {3000, 0}})
	solved, _ := vehicle.NewVehicle(depot, 0, 0, 100, 10, []*point.Point{a}, 1)
	unsolved, _ := vehicle.NewVehicle(depot, 0, 0, 100, 10, nil, 1)

	p, err := plan.NewRoutingPlan("T-n2-k2", []*point.Point{depot, a}, []int{0},
		[]*vehicle.Vehicle{solved, unsolved}, m, true, services.EuclideanDistance{})
	require.NoError(t, err)

	t.Run("should encode point space and vehicles", func(t *testing.T) {
		out, err := payload.Encode(p)

		require.NoError(t, err)
		assert.True(t, out.TimeWindowed)
		assert.Equal(t, [][]float64{{0, 3000}, {3000, 0}}, out.DistanceMatrix)
		require.Len(t, out.CustomersVec, 2)
		assert.Nil(t, out.CustomersVec[0].Demand)
		assert.Equal(t, int64(50), *out.CustomersVec[1].TimeWindowEnd)
		assert.Equal(t, int64(2), *out.CustomersVec[1].ServiceTime)
		assert.Equal(t, []payload.Point{out.CustomersVec[0]}, out.DepotVec)
		assert.Equal(t, []payload.VecRef{{VecID: 1}}, out.Vehicles[0].Customers)
		assert.Nil(t, out.Vehicles[1].Customers)
	})

	t.Run("should marshal unresolved route as null", func(t *testing.T) {
		out, _ := payload.Encode(p)

		data, err := out.Marshal()
		require.NoError(t, err)

		var generic map[string]any
		require.NoError(t, json.Unmarshal(data, &generic))
		vehicles := generic["vehicles"].([]any)
		assert.Nil(t, vehicles[1].(map[string]any)["customers"])
		assert.Len(t, vehicles[0].(map[string]any)["customers"], 1)
	})

	t.Run("should reject plan built without constructor", func(t *testing.T) {
		_, err := payload.Encode(&plan.RoutingPlan{})

		assert.ErrorIs(t, err, plan.ErrRoutingPlanIsNotConstructed)
	})
}
