package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChristianF88/linsort/steps"
	"github.com/rivo/tview"
)

const (
	highlightTag = "[black:yellow]"
	activeTag    = "[black:green]"
	resetTag     = "[-:-]"
)

// cellWidth is the widest rendered value or index, at least 3
func cellWidth(values []string, n int) int {
	w := len(fmt.Sprint(n))
	for _, v := range values {
		if len(v) > w {
			w = len(v)
		}
	}
	if w < 3 {
		w = 3
	}
	return w
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// renderRow draws cells with an index row underneath, marking the given indices
func renderRow(cells []string, marked map[int]string) string {
	width := cellWidth(cells, len(cells))
	var top, bottom strings.Builder
	for i, c := range cells {
		cell := center(c, width)
		if tag, ok := marked[i]; ok {
			top.WriteString(tag + cell + resetTag)
		} else {
			top.WriteString(cell)
		}
		top.WriteString(" ")
		bottom.WriteString(center(fmt.Sprint(i), width))
		bottom.WriteString(" ")
	}
	return top.String() + "\n[gray]" + bottom.String() + "[white]"
}

func renderArray(st steps.Step) string {
	if len(st.Array) == 0 {
		return "[gray](empty)[white]"
	}
	cells := make([]string, len(st.Array))
	for i, v := range st.Array {
		cells[i] = steps.FormatValue(v)
	}
	marked := make(map[int]string, len(st.Highlighted))
	for _, idx := range st.Highlighted {
		marked[idx] = highlightTag
	}
	return renderRow(cells, marked)
}

func slotCells(slots []int) []string {
	cells := make([]string, len(slots))
	for i, v := range slots {
		if v == steps.EmptySlot {
			cells[i] = "_"
		} else {
			cells[i] = fmt.Sprint(v)
		}
	}
	return cells
}

func renderAux(st steps.Step) string {
	var b strings.Builder
	switch {
	case st.Aux.Counting != nil:
		aux := st.Aux.Counting
		if aux.DigitExponent > 0 {
			fmt.Fprintf(&b, "[yellow]Digit exponent:[white] %d\n\n", aux.DigitExponent)
		}
		b.WriteString("[yellow]Count[white]\n")
		if len(aux.Count) == 0 {
			b.WriteString("[gray](not created)[white]\n")
		} else {
			b.WriteString(renderRow(slotCells(aux.Count), markIndex(aux.CountIndex, activeTag)))
			b.WriteString("\n")
		}
		b.WriteString("\n[yellow]Output[white]\n")
		if len(aux.Output) == 0 {
			b.WriteString("[gray](not created)[white]\n")
		} else {
			b.WriteString(renderRow(slotCells(aux.Output), markIndex(aux.OutputIndex, activeTag)))
			b.WriteString("\n")
		}
	case st.Aux.Bucket != nil:
		aux := st.Aux.Bucket
		b.WriteString("[yellow]Buckets[white]\n")
		for i, bucket := range aux.Buckets {
			values := make([]string, len(bucket))
			for j, v := range bucket {
				values[j] = steps.FormatValue(v)
			}
			line := fmt.Sprintf("%d: %s", i, strings.Join(values, " "))
			if i == aux.BucketIndex {
				line = activeTag + line + resetTag
			}
			b.WriteString(line + "\n")
		}
	default:
		b.WriteString("[gray](no auxiliary data)[white]\n")
	}
	return b.String()
}

func markIndex(idx int, tag string) map[int]string {
	if idx == steps.NoIndex {
		return nil
	}
	return map[int]string{idx: tag}
}

// renderPseudocode numbers the listing from 1 and marks the active line
func renderPseudocode(lines []string, active int) string {
	var b strings.Builder
	for i, line := range lines {
		text := fmt.Sprintf("%2d  %s", i+1, tview.Escape(line))
		if i+1 == active {
			text = highlightTag + text + resetTag
		}
		b.WriteString(text + "\n")
	}
	return b.String()
}

func renderInfo(info steps.AlgorithmInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]\n\n", info.Title)
	for _, line := range info.Outline {
		b.WriteString(tview.Escape(line) + "\n")
	}
	fmt.Fprintf(&b, "\n[yellow]%s[white]", info.Complexity)
	return b.String()
}

func renderStatus(cursor, total int, st steps.Step, playing bool, interval time.Duration) string {
	state := "[yellow]paused[white]"
	if playing {
		state = "[green]playing[white]"
	}
	if total == 0 {
		return "[gray]no steps[white] | 'e' edit input, 'n' random, 'a' algorithm, 'q' quit"
	}
	phase := string(st.Phase)
	if st.Phase == steps.PhaseError {
		phase = "[red]error[white]"
	}
	return fmt.Sprintf("Step %d/%d | %s | %s | %v/step | space play, ←/→ step, +/- speed, r reset, n random, e edit, a algorithm, q quit",
		cursor+1, total, phase, state, interval)
}

func renderDescription(st steps.Step) string {
	if st.Phase == steps.PhaseError {
		return "[red]" + tview.Escape(st.Description) + "[white]"
	}
	return tview.Escape(st.Description)
}
