package console

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns console collections into server-rendered chart HTML for
// the overview page.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// LeadsByStatus renders a bar chart of lead counts grouped by status.
func (r *ChartRenderer) LeadsByStatus(leads []Lead) (string, error) {
	counts := map[string]int{}
	for _, lead := range leads {
		status := strings.TrimSpace(lead.Status)
		if status == "" {
			status = "Sin estado"
		}
		counts[status]++
	}
	labels := sortedKeys(counts)
	data := make([]opts.BarData, len(labels))
	for i, label := range labels {
		data[i] = opts.BarData{Name: label, Value: counts[label]}
	}

	return r.cached("leads_by_status", counts, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions("Solicitudes por estado", "")...)
		bar.SetXAxis(labels)
		bar.AddSeries("Solicitudes", data)
		return renderChart(bar)
	})
}

// RatingsDistribution renders a bar chart of comment counts per star rating.
func (r *ChartRenderer) RatingsDistribution(comments []Comment) (string, error) {
	counts := make([]int, ratingScale+1)
	for _, comment := range comments {
		rating := comment.Rating
		if rating < 0 {
			rating = 0
		}
		if rating > ratingScale {
			rating = ratingScale
		}
		counts[rating]++
	}
	labels := make([]string, 0, ratingScale)
	data := make([]opts.BarData, 0, ratingScale)
	for rating := 1; rating <= ratingScale; rating++ {
		labels = append(labels, RatingMarks(rating))
		data = append(data, opts.BarData{Name: labels[rating-1], Value: counts[rating]})
	}

	return r.cached("ratings_distribution", counts, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions("Calificaciones", "")...)
		bar.SetXAxis(labels)
		bar.AddSeries("Comentarios", data)
		return renderChart(bar)
	})
}

// RegistrationsByMonth renders a line chart of user sign-ups per month.
func (r *ChartRenderer) RegistrationsByMonth(users []User) (string, error) {
	counts := map[string]int{}
	for _, user := range users {
		if user.RegisteredAt.IsZero() {
			continue
		}
		counts[user.RegisteredAt.Format("2006-01")]++
	}
	months := sortedKeys(counts)
	data := make([]opts.LineData, len(months))
	for i, month := range months {
		data[i] = opts.LineData{Name: month, Value: counts[month]}
	}

	return r.cached("registrations_by_month", counts, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions("Usuarios registrados", "por mes")...)
		line.SetXAxis(months)
		line.AddSeries("Registros", data)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

func (r *ChartRenderer) cached(name string, dataset any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", name, r.theme, datasetHash(dataset))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
