// Package render rasterizes derived chart data for clients that want a
// ready-made image instead of drawing the donut themselves.
package render

import (
	"io"
	"strings"

	"circlefin-go/internal/domain/derive"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const pieSize = 512

// Pie writes the chart as a PNG. The derivation layer guarantees at least
// one slice, so rendering is total as well.
func Pie(w io.Writer, data derive.ChartData) error {
	values := make([]chart.Value, 0, len(data.Series))
	for i, slice := range data.Series {
		label := ""
		if i < len(data.Key) {
			label = data.Key[i].Name
		}
		values = append(values, chart.Value{
			Value: slice.Value,
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(strings.TrimPrefix(slice.Color, "#")),
			},
		})
	}

	pie := chart.PieChart{
		Width:  pieSize,
		Height: pieSize,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}
