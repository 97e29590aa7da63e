// Package console prints plan reports in the plain text layout used by the
// command line client.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"routing/internal/core/application/usecases/queries"
)

const pathSeparator = " --> "

// ReportPrinter writes plan reports to an output stream.
type ReportPrinter struct {
	out io.Writer
}

func NewReportPrinter(out io.Writer) *ReportPrinter {
	return &ReportPrinter{out: out}
}

// PrintMetrics writes the two summary lines of a solved plan, or a single
// overview line for a plan that is not solved yet.
func (p *ReportPrinter) PrintMetrics(report queries.GetPlanReportQueryResponse) error {
	if !report.Solved {
		_, err := fmt.Fprintf(p.out, "Plan %s is not solved yet: %d vehicles, %d points, %d depots\n",
			report.Name, report.Vehicles, report.Points, report.Depots)
		return err
	}

	_, err := fmt.Fprintf(p.out, "Solution distance: %s\nUnique stops (excluding depots): %d\n",
		number(report.TotalDistance), report.UniqueStops)
	return err
}

// PrintPaths writes one block per vehicle trip.
func (p *ReportPrinter) PrintPaths(report queries.GetPlanReportQueryResponse) error {
	var b strings.Builder
	for _, trip := range report.Trips {
		fmt.Fprintf(&b, "\nvehicle %d trip metrics: \n", trip.Vehicle)
		fmt.Fprintf(&b, "Distance: %s\n", number(trip.Distance))
		fmt.Fprintf(&b, "Demand / capacity: %s / %s\n", number(trip.Demand), number(trip.Capacity))
		b.WriteString(strings.Join(trip.Stops, pathSeparator))
		b.WriteString("\n\n")
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
