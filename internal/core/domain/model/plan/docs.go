// Package plan provides the RoutingPlan aggregate: the complete in-memory form
// of one vehicle routing instance, whether it was read from an instance file or
// decoded from a solved message payload.
//
// A plan owns one contiguous 0-based point space shared by customers and depots,
// a square distance matrix aligned to that space, the ordered list of depot
// matrix indices, and the vehicles. Vehicles reference points of the plan; they
// never hold copies.
//
// Metrics (trip length, trip demand, total distance, unique stop count) are
// read-only and require the vehicles' routes to be resolved.
package plan
