// Package report renders a self-contained HTML page comparing the predicted
// screen intensity with the particle detections of a run.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"

	"github.com/slitsim/slitsim/sim"
)

const (
	// DefaultBins is the histogram resolution used when Config.Bins is unset.
	DefaultBins = 60
	// DefaultProfileSamples is the intensity curve resolution used when
	// Config.ProfileSamples is unset.
	DefaultProfileSamples = 601
)

// Config controls report layout.
type Config struct {
	Title          string
	Bins           int
	ProfileSamples int
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "Double-slit interference"
	}
	if c.Bins <= 0 {
		c.Bins = DefaultBins
	}
	if c.ProfileSamples < 2 {
		c.ProfileSamples = DefaultProfileSamples
	}
	return c
}

// Render writes the report for parameters p and the detected particles to w.
// The particle histogram is omitted when particles is empty.
func Render(w io.Writer, p sim.PhysicsParams, particles []sim.Particle, cfg Config) error {
	cfg = cfg.withDefaults()
	startTime := time.Now()

	page := components.NewPage()
	page.PageTitle = cfg.Title
	page.AddCharts(intensityChart(p, cfg))
	if len(particles) > 0 {
		h := DetectionHistogram(p, particles, sim.ScreenWidth, cfg.Bins)
		page.AddCharts(histogramChart(h, cfg))
		logrus.WithFields(logrus.Fields{
			"hits":   len(particles),
			"mean":   h.Mean,
			"stddev": h.StdDev,
		}).Debug("Detection histogram built")
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	logrus.WithField("time", time.Since(startTime)).Debug("Report rendered")
	return nil
}

// WriteFile renders the report to path, creating or truncating it.
func WriteFile(path string, p sim.PhysicsParams, particles []sim.Particle, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := Render(f, p, particles, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	logrus.WithField("path", path).Info("Report saved")
	return nil
}

func intensityChart(p sim.PhysicsParams, cfg Config) *charts.Line {
	z, intensity := sim.Profile(p, sim.ScreenWidth, cfg.ProfileSamples)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: cfg.Title,
			Subtitle: fmt.Sprintf("λ=%.3g μm  d=%.3g μm  w=%.3g μm  D=%.3g μm  fringe spacing %.3g μm",
				p.Wavelength, p.SlitSeparation, p.SlitWidth, p.ScreenDistance, sim.FringeSpacing(p)),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "z, μm",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "I(z)",
			Type: "value",
			Show: opts.Bool(true),
		}),
	)

	labels := make([]string, len(z))
	data := make([]opts.LineData, len(intensity))
	for i := range z {
		labels[i] = fmt.Sprintf("%.2f", z[i])
		data[i] = opts.LineData{Value: intensity[i]}
	}
	line.SetXAxis(labels)
	line.AddSeries("intensity", data)
	return line
}

func histogramChart(h Histogram, cfg Config) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Detections",
			Subtitle: fmt.Sprintf("%.0f hits in %d bins, mean %.3f μm, σ %.3f μm", h.Total(), len(h.Counts), h.Mean, h.StdDev),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "z, μm",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "hits",
			Type: "value",
		}),
	)

	centers := h.Centers()
	labels := make([]string, len(centers))
	observed := make([]opts.BarData, len(centers))
	expected := make([]opts.BarData, len(centers))
	for i, c := range centers {
		labels[i] = fmt.Sprintf("%.2f", c)
		observed[i] = opts.BarData{Value: h.Counts[i]}
		expected[i] = opts.BarData{Value: h.Expected[i]}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("observed", observed)
	bar.AddSeries("expected", expected)
	return bar
}
