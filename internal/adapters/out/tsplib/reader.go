package tsplib

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"routing/internal/core/ports"
	"routing/internal/pkg/errs"
)

const (
	coordSection  = "NODE_COORD_SECTION"
	weightSection = "EDGE_WEIGHT_SECTION"
	demandSection = "DEMAND_SECTION"
	depotSection  = "DEPOT_SECTION"
	endOfFile     = "EOF"
	depotsEnd     = "-1"
)

const (
	demandFields       = 2
	windowDemandFields = 5
)

// Reader reads instance text into raw section records.
type Reader struct{}

var _ ports.InstanceReader = (*Reader)(nil)

func NewReader() *Reader {
	return &Reader{}
}

// Read parses r section by section. See the package documentation for the layout.
func (rd *Reader) Read(ctx context.Context, r io.Reader) (ports.RawInstance, error) {
	in := newLines(ctx, r)

	var (
		raw ports.RawInstance
		err error
	)
	if raw.Metadata, err = readMetadata(in); err != nil {
		return ports.RawInstance{}, err
	}
	if raw.Points, err = readPoints(in); err != nil {
		return ports.RawInstance{}, err
	}
	if raw.HasExplicitMatrix() {
		if raw.Matrix, err = readMatrix(in, len(raw.Points)); err != nil {
			return ports.RawInstance{}, err
		}
	}

	var more bool
	if raw.Demands, raw.TimeWindowed, more, err = readDemands(in, len(raw.Points)); err != nil {
		return ports.RawInstance{}, err
	}
	if more {
		if raw.DepotIndices, err = readDepots(in, len(raw.Points)); err != nil {
			return ports.RawInstance{}, err
		}
	}

	return raw, nil
}

// section reads lines until one satisfies isEnd and hands every other non-blank
// line to record. The terminating line is returned.
func section(in *lines, name string, isEnd func(string) bool, record func(string) error) (string, error) {
	for {
		line, ok, err := in.next()
		if err != nil {
			return "", fmt.Errorf("read %s section: %w", name, err)
		}
		if !ok {
			return "", errs.NewUnexpectedEndOfInputError(name, in.number)
		}
		if isEnd(line) {
			return line, nil
		}
		if line == "" {
			continue
		}
		if err := record(line); err != nil {
			return "", err
		}
	}
}

func readMetadata(in *lines) (ports.RawMetadata, error) {
	values := make(map[string]string)

	_, err := section(in, "metadata",
		func(line string) bool { return strings.Contains(line, coordSection) },
		func(line string) error {
			fields := strings.Fields(line)
			key := strings.TrimSuffix(fields[0], ":")
			switch key {
			case "NAME", "TYPE", "EDGE_WEIGHT_TYPE", "CAPACITY":
			default:
				return nil
			}
			value := strings.TrimPrefix(fields[len(fields)-1], ":")
			if len(fields) < 2 || value == "" {
				return errs.NewMalformedMetadataErrorWithCause(key, fmt.Errorf("line %d has no value", in.number))
			}
			values[key] = value
			return nil
		})
	if err != nil {
		return ports.RawMetadata{}, err
	}

	meta := ports.RawMetadata{
		DatasetName:    values["NAME"],
		Type:           values["TYPE"],
		EdgeWeightType: values["EDGE_WEIGHT_TYPE"],
	}
	if meta.DatasetName == "" {
		return ports.RawMetadata{}, errs.NewMalformedMetadataError("NAME")
	}
	if meta.VehicleCount, err = vehicleCount(meta.DatasetName); err != nil {
		return ports.RawMetadata{}, errs.NewMalformedMetadataErrorWithCause("NAME", err)
	}
	if meta.EdgeWeightType == "" {
		return ports.RawMetadata{}, errs.NewMalformedMetadataError("EDGE_WEIGHT_TYPE")
	}
	capacity, ok := values["CAPACITY"]
	if !ok {
		return ports.RawMetadata{}, errs.NewMalformedMetadataError("CAPACITY")
	}
	if meta.VehicleCapacity, err = strconv.Atoi(capacity); err != nil {
		return ports.RawMetadata{}, errs.NewMalformedMetadataErrorWithCause("CAPACITY", err)
	}

	return meta, nil
}

// vehicleCount derives the fleet size from a dataset name such as "A-n32-k5".
func vehicleCount(name string) (int, error) {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return 0, fmt.Errorf("%q has no vehicle count suffix", name)
	}
	count, err := strconv.Atoi(strings.ReplaceAll(name[i+1:], "k", ""))
	if err != nil {
		return 0, fmt.Errorf("%q has no vehicle count suffix: %w", name, err)
	}
	if count < 0 {
		return 0, fmt.Errorf("%q has a negative vehicle count", name)
	}
	return count, nil
}

func readPoints(in *lines) ([]ports.RawPoint, error) {
	var points []ports.RawPoint

	_, err := section(in, "coordinates",
		func(line string) bool {
			return strings.Contains(line, endOfFile) ||
				strings.Contains(line, demandSection) ||
				strings.Contains(line, weightSection)
		},
		func(line string) error {
			fields := strings.Fields(line)
			if len(fields) < 3 || len(fields) > 4 {
				return invalidLine("coordinates", in.number, fmt.Errorf("want 3 or 4 fields, got %d", len(fields)))
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return invalidLine("coordinates", in.number, err)
			}
			lat, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return invalidLine("coordinates", in.number, err)
			}
			lon, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return invalidLine("coordinates", in.number, err)
			}
			name := strconv.Itoa(id)
			if len(fields) == 4 {
				name = fields[3]
			}
			points = append(points, ports.RawPoint{ID: id, Latitude: lat, Longitude: lon, Name: name})
			return nil
		})

	return points, err
}

func readMatrix(in *lines, size int) ([][]float64, error) {
	rows := make([][]float64, 0, size)

	_, err := section(in, "distance matrix",
		func(line string) bool { return strings.Contains(line, endOfFile) },
		func(line string) error {
			if strings.HasSuffix(line, "_SECTION") {
				return nil
			}
			fields := strings.Fields(line)
			if len(fields) != size {
				return invalidLine("distance matrix", in.number, fmt.Errorf("want %d values, got %d", size, len(fields)))
			}
			row := make([]float64, size)
			for j, field := range fields {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return invalidLine("distance matrix", in.number, err)
				}
				row[j] = v
			}
			rows = append(rows, row)
			return nil
		})
	if err != nil {
		return nil, err
	}
	if len(rows) != size {
		return nil, invalidLine("distance matrix", in.number, fmt.Errorf("want %d rows, got %d", size, len(rows)))
	}

	return rows, nil
}

// readDemands returns the demand records, the time window flag, and whether a
// depot section follows.
func readDemands(in *lines, pointCount int) ([]ports.RawDemand, bool, bool, error) {
	var (
		demands  []ports.RawDemand
		width    int
		windowed bool
	)

	end, err := section(in, "demand",
		func(line string) bool {
			return strings.Contains(line, endOfFile) || strings.Contains(line, depotSection)
		},
		func(line string) error {
			if strings.HasSuffix(line, "_SECTION") {
				return nil
			}
			fields := strings.Fields(line)
			if width == 0 {
				if len(fields) != demandFields && len(fields) != windowDemandFields {
					return invalidLine("demand", in.number,
						fmt.Errorf("want %d or %d fields, got %d", demandFields, windowDemandFields, len(fields)))
				}
				width = len(fields)
				windowed = width == windowDemandFields
			}
			if len(fields) != width {
				return invalidLine("demand", in.number, fmt.Errorf("want %d fields like the first record, got %d", width, len(fields)))
			}
			if len(demands) == pointCount {
				return invalidLine("demand", in.number, fmt.Errorf("more demand records than %d points", pointCount))
			}

			d, err := parseDemand(fields)
			if err != nil {
				return invalidLine("demand", in.number, err)
			}
			demands = append(demands, d)
			return nil
		})
	if err != nil {
		return nil, false, false, err
	}

	return demands, windowed, strings.Contains(end, depotSection), nil
}

func parseDemand(fields []string) (ports.RawDemand, error) {
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return ports.RawDemand{}, err
	}
	demand, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ports.RawDemand{}, err
	}
	d := ports.RawDemand{MatrixIndex: index, Demand: demand}
	if len(fields) != windowDemandFields {
		return d, nil
	}

	var w [3]int64
	for i, field := range fields[2:] {
		if w[i], err = strconv.ParseInt(field, 10, 64); err != nil {
			return ports.RawDemand{}, err
		}
	}
	d.Window = &ports.RawWindow{Start: w[0], End: w[1], ServiceTime: w[2]}
	return d, nil
}

func readDepots(in *lines, pointCount int) ([]int, error) {
	var depots []int
	seen := make(map[int]struct{})

	_, err := section(in, "depot",
		func(line string) bool { return line == depotsEnd || strings.Contains(line, endOfFile) },
		func(line string) error {
			index, err := strconv.Atoi(line)
			if err != nil {
				return invalidLine("depot", in.number, err)
			}
			if index < 0 || index >= pointCount {
				return errs.NewReferenceOutOfRangeError("depot index", index, pointCount)
			}
			if _, dup := seen[index]; dup {
				return invalidLine("depot", in.number, fmt.Errorf("depot %d is listed twice", index))
			}
			seen[index] = struct{}{}
			depots = append(depots, index)
			return nil
		})

	return depots, err
}

func invalidLine(section string, line int, cause error) error {
	return errs.NewValueIsInvalidErrorWithCause(section+" section", fmt.Errorf("line %d: %w", line, cause))
}
