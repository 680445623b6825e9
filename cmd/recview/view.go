package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sgostarter/librecorder/recorder"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4")).
		PaddingLeft(2)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#626262"))

	resultsStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(0, 2)
)

// grid returns n evenly spaced points over [from, to], n < 2 gives just from.
func grid(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}

	xs := make([]float64, n)
	step := (to - from) / float64(n-1)

	for i := range xs {
		xs[i] = from + step*float64(i)
	}

	xs[n-1] = to

	return xs
}

func render(title string, r *recorder.Recorder, xs []float64) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%14s %14s %14s %14s", "x", "y", "dy/dx", "d2y/dx2")))

	for _, x := range xs {
		sb.WriteString(fmt.Sprintf("\n%14.6g %14.6g %14.6g %14.6g", x, r.Y(x), r.YDx(x), r.YDxDx(x)))
	}

	xMin, xMax := r.EstimateXRange()

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%s  %d samples  [%g, %g]", title, r.Len(), xMin, xMax)),
		resultsStyle.Render(sb.String()),
	)
}
