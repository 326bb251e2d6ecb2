package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChristianF88/linsort/steps"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("99")
	red    = lipgloss.Color("204")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("243")
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(yellow)
	phaseStyle     = lipgloss.NewStyle().Foreground(accent)
	mutedStyle     = lipgloss.NewStyle().Foreground(dim)
	errorStyle     = lipgloss.NewStyle().Foreground(red)
)

// WritePlain prints the document as a human-readable step listing
func WritePlain(w io.Writer, doc *StepsOutput) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(doc.Algorithm.Info.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("input: %s  steps: %d  run: %s",
		formatValues(doc.Input, nil), doc.Summary.TotalSteps, doc.Metadata.RunID)))
	b.WriteString("\n\n")

	width := len(fmt.Sprint(len(doc.Steps)))
	for i, st := range doc.Steps {
		fmt.Fprintf(&b, "%*d %s %s\n", width, i,
			phaseStyle.Render(fmt.Sprintf("%-11s", st.Phase)),
			st.Description)
		fmt.Fprintf(&b, "%*s   %s\n", width, "", formatValues(st.Array, st.Highlighted))
		if aux := formatAux(st.Aux); aux != "" {
			fmt.Fprintf(&b, "%*s   %s\n", width, "", mutedStyle.Render(aux))
		}
	}

	for _, e := range doc.Errors {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error (%s): %s", e.Type, e.Message)))
		b.WriteString("\n")
	}
	for _, warn := range doc.Warnings {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("warning (%s): %s", warn.Type, warn.Message)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatValues renders values in brackets, styling the highlighted indices
func formatValues(values []float64, highlighted []int) string {
	marked := make(map[int]bool, len(highlighted))
	for _, idx := range highlighted {
		marked[idx] = true
	}
	parts := make([]string, len(values))
	for i, v := range values {
		s := steps.FormatValue(v)
		if marked[i] {
			s = highlightStyle.Render(s)
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatSlots(slots []int) string {
	parts := make([]string, len(slots))
	for i, v := range slots {
		if v == steps.EmptySlot {
			parts[i] = "_"
		} else {
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatAux(aux steps.Auxiliary) string {
	switch {
	case aux.Counting != nil:
		s := fmt.Sprintf("count %v  output %s", aux.Counting.Count, formatSlots(aux.Counting.Output))
		if aux.Counting.DigitExponent > 0 {
			s += fmt.Sprintf("  exp %d", aux.Counting.DigitExponent)
		}
		return s
	case aux.Bucket != nil:
		parts := make([]string, len(aux.Bucket.Buckets))
		for i, bucket := range aux.Bucket.Buckets {
			parts[i] = formatValues(bucket, nil)
		}
		return "buckets " + strings.Join(parts, " ")
	}
	return ""
}

// WriteToFile writes the given content to a file with the specified filename
func WriteToFile(filename string, content []byte) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", filename, err)
	}
	defer file.Close()

	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
