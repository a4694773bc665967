package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/campusnet/eduroam-installer/op"
)

func writeSummary(writer io.Writer, ops []op.Op) error {
	t := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)

	_, err := fmt.Fprint(t, formatReportLine("step", "status", "exit code", "duration"))
	if err != nil {
		return err
	}

	for _, o := range ops {
		_, err := fmt.Fprint(t, formatReportLine(
			o.Identifier,
			string(o.Status),
			strconv.Itoa(o.ExitCode),
			o.Duration().Round(10*time.Millisecond).String()))
		if err != nil {
			return err
		}
	}

	if err := t.Flush(); err != nil {
		return err
	}

	counts, err := op.StatusCounts(ops)
	if err != nil {
		return err
	}
	var totals []string
	for _, status := range []op.Status{op.Success, op.Fail, op.Timeout, op.Unknown} {
		if n := counts[status]; n > 0 {
			totals = append(totals, fmt.Sprintf("%d %s", n, status))
		}
	}
	_, err = fmt.Fprintf(writer, "\n%s\n", strings.Join(totals, ", "))
	return err
}

func formatReportLine(cells ...string) string {
	format := ""

	// The coercion from the argument of type []string to type []interface is required for the later
	// call to fmt.Sprintf, in which variadic arguments must be of type any/interface{}.
	strValues := make([]interface{}, len(cells))
	for i, cell := range cells {
		format += "%s\t"
		strValues[i] = cell
	}

	format += "\n"

	return fmt.Sprintf(format, strValues...)
}
