// Demo walks a full plotshape run in the terminal: build a sample trial,
// rotate it onto real coordinates, index it, then fire point lookups at
// the index.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldtrial/plotshape/pkg/index"
	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/pipeline"
)

const (
	numRanges  = 20
	numRows    = 40
	numLookups = 100000
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

type stage int

const (
	stageBuilding stage = iota
	stageBuildComplete
	stageLookups
	stageDone
)

type buildStats struct {
	plots    int
	duration time.Duration
	theta    float64
}

type lookupStats struct {
	lookups       int
	hits          int
	duration      time.Duration
	lookupsPerSec float64
}

type stageCompleteMsg struct {
	stage stage
	stats interface{}
}

type model struct {
	stage           stage
	spinner         spinner.Model
	progress        progress.Model
	progressPercent float64

	build   buildStats
	lookups lookupStats

	idx   *index.PlotIndex
	plots []models.PolygonRecord

	width  int
	height int
}

func initialModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	return model{
		stage:    stageBuilding,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runBuild())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case builtMsg:
		m.build = msg.stats
		m.idx = msg.idx
		m.plots = msg.plots
		m.stage = stageBuildComplete
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return advanceMsg{}
		})

	case advanceMsg:
		m.stage = stageLookups
		return m, runLookups(m.idx, m.plots)

	case stageCompleteMsg:
		if stats, ok := msg.stats.(lookupStats); ok {
			m.lookups = stats
		}
		m.stage = stageDone
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🌾 plotshape demo"))
	b.WriteString("\n\n")

	switch m.stage {
	case stageBuilding:
		b.WriteString(subtitleStyle.Render("Building Trial"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + fmt.Sprintf(" Laying out %d ranges x %d rows...\n", numRanges, numRows))

	case stageBuildComplete:
		b.WriteString(renderBuildStats(m.build))

	case stageLookups:
		b.WriteString(subtitleStyle.Render("Running Plot Lookups"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + fmt.Sprintf(" Locating %d random GPS fixes...\n", numLookups))

	case stageDone:
		b.WriteString(renderBuildStats(m.build))
		b.WriteString("\n")
		b.WriteString(renderLookupStats(m.lookups))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press 'q' to quit"))

	return b.String()
}

func renderBuildStats(stats buildStats) string {
	content := fmt.Sprintf(
		"✓ Plot polygons: %s\n"+
			"✓ Build time: %s\n"+
			"✓ Rotation: %s rad",
		statStyle.Render(fmt.Sprintf("%d", stats.plots)),
		statStyle.Render(stats.duration.String()),
		statStyle.Render(fmt.Sprintf("%.4f", stats.theta)),
	)
	return boxStyle.Render(successStyle.Render("Trial Built!\n\n") + content)
}

func renderLookupStats(stats lookupStats) string {
	content := fmt.Sprintf(
		"✓ Lookups: %s\n"+
			"✓ Hits: %s\n"+
			"✓ Total time: %s\n"+
			"✓ Lookups per second: %s",
		statStyle.Render(fmt.Sprintf("%d", stats.lookups)),
		statStyle.Render(fmt.Sprintf("%d", stats.hits)),
		statStyle.Render(stats.duration.String()),
		statStyle.Render(fmt.Sprintf("%.0f", stats.lookupsPerSec)),
	)
	return boxStyle.Render(successStyle.Render("Lookups Complete!\n\n") + content)
}

type builtMsg struct {
	stats buildStats
	idx   *index.PlotIndex
	plots []models.PolygonRecord
}

type advanceMsg struct{}

func runBuild() tea.Cmd {
	return func() tea.Msg {
		design := sampleDesign(numRanges, numRows)

		start := time.Now()
		res, err := pipeline.Build(design, pipeline.Params{
			A:       models.GeoPoint{Easting: 746239.817, Northing: 3382052.264},
			B:       models.GeoPoint{Easting: 746334.224, Northing: 3382152.870},
			UTMZone: "14",
			Output:  "demo",
		})
		if err != nil {
			log.Fatalf("build failed: %v", err)
		}

		idx := index.NewPlotIndex()
		if err := idx.IndexPolygons(res.Plots); err != nil {
			log.Fatalf("indexing failed: %v", err)
		}

		return builtMsg{
			stats: buildStats{
				plots:    len(res.Plots),
				duration: time.Since(start),
				theta:    res.Line.Theta,
			},
			idx:   idx,
			plots: res.Plots,
		}
	}
}

func runLookups(idx *index.PlotIndex, plots []models.PolygonRecord) tea.Cmd {
	return func() tea.Msg {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))

		// Probe around the trial's extent so most fixes land in a plot.
		minE, minN, maxE, maxN := plots[0].Bounds()
		for _, p := range plots[1:] {
			e0, n0, e1, n1 := p.Bounds()
			minE, minN = min(minE, e0), min(minN, n0)
			maxE, maxN = max(maxE, e1), max(maxN, n1)
		}

		start := time.Now()
		hits := 0
		for i := 0; i < numLookups; i++ {
			pt := models.GeoPoint{
				Easting:  minE + r.Float64()*(maxE-minE),
				Northing: minN + r.Float64()*(maxN-minN),
			}
			if len(idx.Locate(pt)) > 0 {
				hits++
			}
		}
		elapsed := time.Since(start)

		return stageCompleteMsg{
			stage: stageLookups,
			stats: lookupStats{
				lookups:       numLookups,
				hits:          hits,
				duration:      elapsed,
				lookupsPerSec: float64(numLookups) / elapsed.Seconds(),
			},
		}
	}
}

func sampleDesign(nRange, nRow int) models.Design {
	var d models.Design
	plot := 0
	for r := 1; r <= nRange; r++ {
		for c := 1; c <= nRow; c++ {
			plot++
			d.Plot = append(d.Plot, float64(plot))
			d.Range = append(d.Range, float64(r))
			d.Row = append(d.Row, float64(c))
			d.Label = append(d.Label, fmt.Sprintf("BC%04d", plot))
		}
	}
	return d
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
}
