package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/guptarohit/asciigraph"

	"multicomp/domain/study"
)

// Format selects the report rendering
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Render produces the study report in the requested format
func Render(r *study.StudyReport, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return renderText(r), nil
	case FormatMarkdown:
		return renderMarkdown(r), nil
	case FormatHTML:
		return renderHTML(r), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(r *study.StudyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "study %s (seed %d)\n\n", r.StudyID, r.Seed)

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tPROCEDURE\tGROUPS\tALPHA\tTRIALS\tPOSITIVES\tRATE\tTHEORY")
	for _, res := range r.Results {
		s := res.Scenario
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%d\t%d\t%.4f\t%.4f\n",
			s.Name, s.Procedure, s.Groups, s.EffectiveAlpha(), res.Trials,
			res.Positives, res.EmpiricalRate, res.TheoreticalRate)
	}
	w.Flush()

	if chart := rateChart(r.Results); chart != "" {
		b.WriteString("\nempirical false-positive rate by scenario\n")
		b.WriteString(chart)
		b.WriteString("\n")
	}

	if len(r.Audit) > 0 {
		b.WriteString("\nsampling audit (all groups drawn from N(0,1))\n")
		aw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(aw, "GROUP\tN\tMEAN\tSTDDEV\tMIN\tMEDIAN\tMAX")
		for _, m := range r.Audit {
			fmt.Fprintf(aw, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
				m.Group, m.N, m.Mean, m.StdDev, m.Min, m.Median, m.Max)
		}
		aw.Flush()
	}

	return b.String()
}

// rateChart draws the per-scenario empirical rates as an ascii series
func rateChart(results []study.AggregateResult) string {
	if len(results) < 2 {
		return ""
	}
	rates := make([]float64, len(results))
	for i, res := range results {
		rates[i] = res.EmpiricalRate
	}
	return asciigraph.Plot(rates, asciigraph.Height(8), asciigraph.Precision(3))
}

func renderMarkdown(r *study.StudyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Multiple-comparisons study %s\n\n", r.StudyID)
	fmt.Fprintf(&b, "Seed: %d. Every sample is drawn from the same population, so every rejection below is a false positive.\n\n", r.Seed)

	b.WriteString("| Scenario | Procedure | Groups | Alpha | Trials | Positives | Empirical rate | Theoretical rate |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, res := range r.Results {
		s := res.Scenario
		fmt.Fprintf(&b, "| %s | %s | %d | %.4f | %d | %d | %.4f | %.4f |\n",
			s.Name, s.Procedure, s.Groups, s.EffectiveAlpha(), res.Trials,
			res.Positives, res.EmpiricalRate, res.TheoreticalRate)
	}

	if len(r.Audit) > 0 {
		b.WriteString("\n## Sampling audit\n\n")
		b.WriteString("| Group | N | Mean | StdDev | Min | Median | Max |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, m := range r.Audit {
			fmt.Fprintf(&b, "| %d | %d | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
				m.Group, m.N, m.Mean, m.StdDev, m.Min, m.Median, m.Max)
		}
	}

	return b.String()
}

func renderHTML(r *study.StudyReport) string {
	md := renderMarkdown(r)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: fmt.Sprintf("Multiple-comparisons study %s", r.StudyID),
	})
	return string(markdown.Render(doc, renderer))
}
