package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
)

var defaultSliceColor = drawing.Color{R: 0x3c, G: 0x91, B: 0xe6, A: 255}

// ChartPNG рисует кольцевую диаграмму по долям slices.
func ChartPNG(slices []gamification.Slice, size int) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		v, _ := s.Total.Float64()
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: s.Label,
			Style: chart.Style{
				FillColor:   parseHex(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontSize:    8,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("нет данных для графика")
	}

	donut := chart.DonutChart{
		Width:  size,
		Height: size,
		Values: values,
	}
	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("ошибка построения графика: %w", err)
	}
	return buf.Bytes(), nil
}

func parseHex(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil || len(hex) != 6 {
		return defaultSliceColor
	}
	return drawing.ColorFromHex(hex)
}
