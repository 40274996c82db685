// Package report prints the source layout and probe readout for the headless
// commands.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

// Sources writes one table row per real source in slot order.
func Sources(w io.Writer, c acoustic.Config, sources []acoustic.Source) error {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"#", "X (m)", "Y (m)", "Polarity", "Facing", "Delay (ms)", "Phase (rad)"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	real := 0
	for _, s := range sources {
		if s.Reflection {
			continue
		}
		real++
		table.Append([]string{
			fmt.Sprintf("%d", s.Index),
			fmt.Sprintf("%.2f", s.Pos.X),
			fmt.Sprintf("%.2f", s.Pos.Y),
			polarity(s.Inverted),
			facing(s.FrontDown),
			fmt.Sprintf("%.1f", s.DelayMs),
			fmt.Sprintf("%.3f", s.Phase),
		})
	}

	layout := c.Mode.String()
	if c.Dual {
		layout += " dual"
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d", real), layout, fmt.Sprintf("%.2f m", c.Spacing), "", "",
		fmt.Sprintf("%.0f Hz", c.Frequency), "",
	})
	table.Render()

	_, err := io.WriteString(w, b.String())
	return err
}

func polarity(inverted bool) string {
	if inverted {
		return "-"
	}
	return "+"
}

func facing(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

// Probe is the readout at the microphone for one frame.
type Probe struct {
	Position  acoustic.Point
	Nearest   float64
	Decibels  float64
	Analysis  acoustic.Analysis
	Status    acoustic.Status
	Frequency float64
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cancelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	sumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
)

// WriteProbe renders p as a short styled block.
func WriteProbe(w io.Writer, p Probe) error {
	var lines []string
	row := func(label, value string) {
		lines = append(lines, labelStyle.Render(label)+valueStyle.Render(value))
	}

	lines = append(lines, titleStyle.Render("Probe"))
	row("Position", fmt.Sprintf("(%.2f, %.2f) m", p.Position.X, p.Position.Y))
	row("Dist", fmt.Sprintf("%.2fm", p.Nearest))
	row("Level", fmt.Sprintf("%.1f dB", p.Decibels))
	row("Magnitude", fmt.Sprintf("%.3f", p.Analysis.Magnitude))
	row("Coherence", fmt.Sprintf("%.3f", p.Analysis.Coherence))
	row("Phase", fmt.Sprintf("%.3f rad", p.Analysis.Phase()))
	if label := p.Analysis.State.Label(); label != "" {
		style := sumStyle
		if p.Analysis.State == acoustic.Cancellation {
			style = cancelStyle
		}
		lines = append(lines, style.Render(label))
	}

	lines = append(lines, "", titleStyle.Render("Array"))
	row("Frequency", fmt.Sprintf("%.0f Hz", p.Frequency))
	row("Wavelength", fmt.Sprintf("%.2f m", p.Status.Wavelength))
	status := okStyle
	if p.Status.Kind == acoustic.StatusAliasing {
		status = warnStyle
	}
	lines = append(lines, labelStyle.Render("Status")+status.Render(p.Status.Kind.String()))
	if p.Status.EndFireDelayMs > 0 {
		row("End-fire", fmt.Sprintf("%.2f ms", p.Status.EndFireDelayMs))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
