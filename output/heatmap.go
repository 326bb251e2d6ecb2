package output

import (
	"fmt"
	"os"

	"github.com/ChristianF88/linsort/steps"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotSteps renders the array of every step as a heatmap (x = step, y = array
// index, colour = value) together with a line chart of the step count per
// phase, and writes both charts into one HTML page.
func PlotSteps(seq []steps.Step, title, filename string) error {
	if len(seq) == 0 {
		return fmt.Errorf("no steps to plot")
	}

	heatmap := stepsHeatmap(seq, title)
	phases := phaseLine(seq)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(heatmap, phases)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create plot file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}

	return nil
}

func stepsHeatmap(seq []steps.Step, title string) *charts.HeatMap {
	var heatmapData []opts.HeatMapData
	var maxValue float64
	width := 0
	for x, st := range seq {
		if len(st.Array) > width {
			width = len(st.Array)
		}
		for y, v := range st.Array {
			if v > maxValue {
				maxValue = v
			}
			heatmapData = append(heatmapData, opts.HeatMapData{
				Value: [3]interface{}{x, y, v},
				Name:  fmt.Sprintf("step %d (%s)", x, st.Phase), // This appears in tooltip via {b}
			})
		}
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			Width:           "180vh",
			Height:          "60vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
			Formatter: opts.FuncOpts(`function (params) {
		return params.name + '<br />index ' + params.value[1] + ': ' + params.value[2];
	}`),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show: opts.Bool(true),
			Min:  0,
			Max:  float32(maxValue),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#ffff8f", "#ff0000", "#000000"},
			},
			Orient: "vertical",
			Right:  "5%",
			Top:    "middle",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Step",
			Type: "category",
			Data: makeRange(0, len(seq)-1),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Index",
			Type: "category",
			Data: makeRange(0, width-1),
		}),
	)

	heatmap.AddSeries("Array", heatmapData)
	return heatmap
}

// phaseLine plots how many steps each phase contributed, in order of first appearance
func phaseLine(seq []steps.Step) *charts.Line {
	var order []steps.Phase
	counts := make(map[steps.Phase]int)
	for _, st := range seq {
		if _, seen := counts[st.Phase]; !seen {
			order = append(order, st.Phase)
		}
		counts[st.Phase]++
	}

	names := make([]string, len(order))
	data := make([]opts.LineData, len(order))
	for i, phase := range order {
		names[i] = string(phase)
		data[i] = opts.LineData{Value: counts[phase]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "180vh",
			Height:          "30vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Steps per phase",
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(names).AddSeries("Steps", data)
	return line
}

// makeRange creates an integer slice [lo..hi]
func makeRange(lo, hi int) []int {
	if hi < lo {
		return []int{}
	}
	r := make([]int, hi-lo+1)
	for i := range r {
		r[i] = lo + i
	}
	return r
}
