// Package tsplib reads vehicle routing instances written in a TSPLIB-like text
// format.
//
// An instance is a fixed sequence of sections:
//
//	NAME : A-n3-k1             metadata up to NODE_COORD_SECTION
//	EDGE_WEIGHT_TYPE : EUC_2D
//	CAPACITY : 100
//	NODE_COORD_SECTION
//	1 0 0 depot                id, latitude, longitude, optional name
//	2 3 0
//	3 3 4
//	DEMAND_SECTION
//	1 0                        index, demand [, window start, window end, service time]
//	2 4
//	3 6
//	DEPOT_SECTION
//	0                          0-based point index
//	-1
//	EOF
//
// When EDGE_WEIGHT_TYPE is not EUC_2D the coordinates are followed by one matrix
// row per point and an EOF line, before the demand section.
package tsplib
