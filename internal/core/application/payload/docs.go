// Package payload defines the structured message form of a routing plan as it
// travels between this service and the solver, and encodes plans into it.
//
// Vehicles reference points by "vec_id", a position in customers_vec. Depots
// appear in customers_vec as well as in depot_vec so that every reference
// resolves within one list.
package payload
