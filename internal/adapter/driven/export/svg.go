package export

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

const (
	svgWidth   = 640
	svgHeight  = 280
	svgPadding = 48.0
	svgTicks   = 4

	axisColor   = "#475569"
	gridColor   = "#cbd5f5"
	strokeColor = "#2563eb"
	areaColor   = "rgba(37,99,235,0.12)"
	negColor    = "#c00000"
)

// svgLine desenha uma série como linha com área preenchida.
func svgLine(title string, values []float64, labels []string) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}

	chartWidth := float64(svgWidth) - 2*svgPadding
	chartHeight := float64(svgHeight) - 2*svgPadding
	minVal, maxVal, scale := svgScale(values, chartHeight)

	xAt := func(i int) float64 {
		if len(values) == 1 {
			return svgPadding + chartWidth/2
		}
		return svgPadding + float64(i)*chartWidth/float64(len(values)-1)
	}
	yAt := func(v float64) float64 {
		return svgPadding + chartHeight - (v-minVal)*scale
	}

	var path strings.Builder
	for i, v := range values {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		path.WriteString(fmt.Sprintf("%s%.2f %.2f ", cmd, xAt(i), yAt(v)))
	}
	line := strings.TrimSpace(path.String())

	var b strings.Builder
	svgOpen(&b, title)
	svgGrid(&b, minVal, maxVal, chartWidth, chartHeight)

	base := yAt(math.Max(minVal, 0))
	b.WriteString(fmt.Sprintf("<path d=\"%s L%.2f %.2f L%.2f %.2f Z\" fill=\"%s\" stroke=\"none\"></path>",
		line, xAt(len(values)-1), base, xAt(0), base, areaColor))
	b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\"></path>", line, strokeColor))
	for i, v := range values {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"></circle>", xAt(i), yAt(v), strokeColor))
	}
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>",
			xAt(i), svgPadding+chartHeight+14, axisColor, template.HTMLEscapeString(label)))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// svgBars desenha uma série como colunas verticais.
func svgBars(title string, values []float64, labels []string) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}

	chartWidth := float64(svgWidth) - 2*svgPadding
	chartHeight := float64(svgHeight) - 2*svgPadding
	minVal, maxVal, scale := svgScale(values, chartHeight)
	zeroY := svgPadding + chartHeight - (0-minVal)*scale

	slot := chartWidth / float64(len(values))
	barWidth := slot * 0.6

	var b strings.Builder
	svgOpen(&b, title)
	svgGrid(&b, minVal, maxVal, chartWidth, chartHeight)

	for i, v := range values {
		x := svgPadding + float64(i)*slot + (slot-barWidth)/2
		h := math.Abs(v) * scale
		y := zeroY - h
		color := strokeColor
		if v < 0 {
			y = zeroY
			color = negColor
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"><title>%s: %s</title></rect>",
			x, y, barWidth, h, color, template.HTMLEscapeString(labels[i]), formatTick(v)))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>",
			x+barWidth/2, svgPadding+chartHeight+14, axisColor, template.HTMLEscapeString(labels[i])))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func svgOpen(b *strings.Builder, title string) {
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\">", svgWidth, svgHeight))
	b.WriteString(fmt.Sprintf("<title>%s</title>", template.HTMLEscapeString(title)))
}

func svgGrid(b *strings.Builder, minVal, maxVal, chartWidth, chartHeight float64) {
	for i := 0; i <= svgTicks; i++ {
		ratio := float64(i) / float64(svgTicks)
		y := svgPadding + chartHeight - ratio*chartHeight
		value := minVal + (maxVal-minVal)*ratio
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\"></line>",
			svgPadding, y, svgPadding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>",
			svgPadding-6, y+4, axisColor, formatTick(value)))
	}
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\"></line>",
		svgPadding, svgPadding+chartHeight, svgPadding+chartWidth, svgPadding+chartHeight, axisColor))
}

// svgScale inclui o zero no intervalo e devolve o fator de escala vertical.
func svgScale(values []float64, chartHeight float64) (minVal, maxVal, scale float64) {
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	minVal = math.Min(minVal, 0)
	maxVal = math.Max(maxVal, 0)
	if math.Abs(maxVal-minVal) < 1e-9 {
		maxVal = minVal + 1
	}
	return minVal, maxVal, chartHeight / (maxVal - minVal)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
