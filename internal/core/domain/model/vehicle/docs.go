// Package vehicle provides the Vehicle entity. A vehicle is based at one depot
// of its plan and, once the plan is solved, carries the ordered route of stops
// it serves between leaving and returning to that depot.
package vehicle
