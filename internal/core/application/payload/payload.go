package payload

import (
	"encoding/json"
	"fmt"

	"routing/internal/pkg/errs"
)

// Plan is a routing plan on the wire.
type Plan struct {
	Name           string      `json:"name"`
	TimeWindowed   bool        `json:"time_windowed"`
	DistanceMatrix [][]float64 `json:"distance_matrix"`
	CustomersVec   []Point     `json:"customers_vec"`
	DepotVec       []Point     `json:"depot_vec"`
	Vehicles       []Vehicle   `json:"vehicles"`
}

// Point is a customer or depot record.
type Point struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Demand          *float64 `json:"demand"`
	TimeWindowStart *int64   `json:"time_window_start"`
	TimeWindowEnd   *int64   `json:"time_window_end"`
	ServiceTime     *int64   `json:"service_time"`
}

// Vehicle is a vehicle record. A null customers list marks a vehicle whose
// route is not resolved yet.
type Vehicle struct {
	Depot        *VecRef  `json:"depot"`
	WorkDayStart int64    `json:"work_day_start"`
	WorkDayEnd   int64    `json:"work_day_end"`
	Capacity     float64  `json:"capacity"`
	Customers    []VecRef `json:"customers"`
	MaxStops     int      `json:"max_stops"`
}

// VecRef points at a position in Plan.CustomersVec.
type VecRef struct {
	VecID int `json:"vec_id"`
}

// Decode parses a JSON plan payload.
func Decode(data []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return Plan{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	return p, nil
}

// Marshal renders p as JSON.
func (p Plan) Marshal() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal plan payload: %w", err)
	}
	return data, nil
}
