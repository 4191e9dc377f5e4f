package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"alloyheat/internal/alloy"
)

var heatColors = []string{"#000000", "#3b0f0f", "#7f1d1d", "#c2410c", "#f97316", "#facc15", "#fef08a", "#ffffff"}

// WriteHTML renders the snapshot as an interactive echarts heatmap page.
func WriteHTML(w io.Writer, s alloy.Snapshot, title string) error {
	if s.Height == 0 || s.Width == 0 || len(s.Temperatures) == 0 {
		return ErrEmptySnapshot
	}
	cols := make([]int, s.Width)
	for c := range cols {
		cols[c] = c
	}
	rows := make([]int, s.Height)
	for r := range rows {
		rows[r] = s.Height - 1 - r
	}
	data := make([]opts.HeatMapData, 0, len(s.Temperatures))
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			// y is a category index; index 0 sits at the bottom of the axis.
			data = append(data, opts.HeatMapData{Value: [3]interface{}{col, s.Height - 1 - row, s.At(row, col)}})
		}
	}

	st := s.Stats()
	maxVal := st.Max
	if maxVal <= st.Min {
		maxVal = st.Min + 1
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%dx%d min=%.3f max=%.3f mean=%.3f", s.Height, s.Width, st.Min, st.Max, st.Mean),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(st.Min),
			Max:        float32(maxVal),
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)
	hm.AddSeries("temperature", data)
	if err := hm.Render(w); err != nil {
		return fmt.Errorf("failed to render heatmap chart: %w", err)
	}
	return nil
}

// WriteHTMLFile is WriteHTML into a newly created file.
func WriteHTMLFile(path string, s alloy.Snapshot, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteHTML(f, s, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
