package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenml/co2scope/pkg/advisor"
	"github.com/greenml/co2scope/pkg/bench"
	"github.com/greenml/co2scope/pkg/carbon"
	"github.com/greenml/co2scope/pkg/introspect"
	"github.com/greenml/co2scope/pkg/modelrt"
	"github.com/greenml/co2scope/pkg/reference"
	"github.com/greenml/co2scope/pkg/report"
)

type opts struct {
	modelPath  string
	outputPath string
	hardware   string
	region     string

	warmup int
	runs   int

	factorsPath  string
	demoFallback bool
	pretty       bool
	htmlPath     string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "co2scope",
		Short: "CO2 & energy analysis for ML model inference",
		Long: `co2scope estimates the energy consumption and carbon footprint of a single
inference pass of an ML model on a given hardware/region combination, and
produces optimization suggestions.

It inspects the model statically (parameter count, precision mix), benchmarks
inference latency over a synthetic input, applies a TDP/PUE/carbon-intensity
model, and writes a JSON report.

Examples:
  co2scope --model-path ./model.yaml --output-path ./results --hardware-type gpu_t4 --region us-east-1
  co2scope --model-path ./model.yaml --output-path ./results --factors ./factors.yaml --html ./results/report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
		SilenceUsage: true,
	}

	root.Flags().StringVar(&o.modelPath, "model-path", "", "path to the model manifest")
	root.Flags().StringVar(&o.outputPath, "output-path", ".", "directory for the JSON results")
	root.Flags().StringVar(&o.hardware, "hardware-type", "cpu_c5", "target hardware for analysis")
	root.Flags().StringVar(&o.region, "region", "us-east-1", "target region for analysis")
	root.Flags().IntVar(&o.warmup, "warmup", 10, "untimed warm-up passes before measurement")
	root.Flags().IntVar(&o.runs, "runs", 50, "timed passes averaged into the latency figure")
	root.Flags().StringVar(&o.factorsPath, "factors", "", "YAML file overriding hardware/region factors")
	root.Flags().BoolVar(&o.demoFallback, "demo-fallback", false, "analyze the built-in demo model when --model-path is missing")
	root.Flags().BoolVar(&o.pretty, "pretty", true, "print a summary table to stdout")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report to this path")
	_ = root.MarkFlagRequired("model-path")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts) error {
	tables := reference.Builtin()
	if o.factorsPath != "" {
		t, err := reference.Load(o.factorsPath)
		if err != nil {
			return err
		}
		tables = t
		slog.Info("loaded factor overrides", "path", o.factorsPath)
	}

	if !tables.HasHardware(o.hardware) {
		return fmt.Errorf("unknown hardware type %q (known: %v)", o.hardware, tables.HardwareIDs())
	}
	if !tables.HasRegion(o.region) {
		return fmt.Errorf("unknown region %q (known: %v)", o.region, tables.RegionIDs())
	}

	// 1. Load model. A load failure is fatal for the run; nothing below can
	// produce a meaningful analysis without a model handle.
	loaded, err := modelrt.Load(o.modelPath, o.demoFallback)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if loaded.Substituted {
		slog.Warn("model path not found, analyzing the built-in demo model instead; "+
			"results do NOT describe the named file",
			"model_path", o.modelPath, "demo_model", loaded.Name)
	}
	slog.Info("model loaded", "name", loaded.Name, "device", loaded.Device.Name())

	// 2. Static analysis.
	static := introspect.Inspect(loaded.Model)
	slog.Info("static analysis done",
		"total_parameters", static.TotalParameters,
		"precisions", static.Precisions)

	// 3. Latency benchmark.
	slog.Info("measuring inference latency", "warmup", o.warmup, "runs", o.runs)
	measurement := bench.Run(loaded.Model, loaded.Device, &bench.Config{Warmup: o.warmup, Runs: o.runs})
	if measurement.Empty() {
		slog.Warn("benchmark unmeasurable, carbon estimate will be empty")
	} else {
		slog.Info("dynamic analysis done", "mean_latency_ms", measurement.MeanMS)
	}

	// 4. Carbon estimate.
	est := carbon.NewCalculator(tables).Estimate(measurement.MeanMS, o.hardware, o.region)

	// 5. Suggestions.
	suggestions := advisor.NewEngine(tables).Suggest(static, o.hardware)

	// 6. Persist.
	rep := report.New(report.Inputs{
		ModelPath:       o.modelPath,
		HardwareType:    o.hardware,
		Region:          o.region,
		DemoSubstituted: loaded.Substituted,
	}, static, measurement, o.warmup, est, suggestions)

	path, err := report.Write(o.outputPath, rep)
	if err != nil {
		return err
	}
	slog.Info("results saved", "path", path)

	if o.pretty {
		printSummary(rep)
	}

	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, rep); err != nil {
			slog.Error("write html", "err", err)
		} else {
			slog.Info("html report saved", "path", o.htmlPath)
		}
	}

	return nil
}

func printSummary(r *report.Report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "\nAnalysis %s (%s)\n\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Hardware\t%s\n", r.Inputs.HardwareType)
	fmt.Fprintf(tw, "Region\t%s\n", r.Inputs.Region)
	fmt.Fprintf(tw, "Parameters\t%d\n", r.StaticAnalysis.TotalParameters)
	fmt.Fprintf(tw, "Precisions\t%v\n", r.StaticAnalysis.Precisions)
	if r.StaticAnalysis.FLOPs.Placeholder {
		fmt.Fprintf(tw, "FLOPs\t%.3g (placeholder)\n", r.StaticAnalysis.FLOPs.Value)
	} else {
		fmt.Fprintf(tw, "FLOPs\t%.3g\n", r.StaticAnalysis.FLOPs.Value)
	}

	if r.CO2Estimation.Empty() {
		fmt.Fprintf(tw, "Latency\tunmeasurable\n")
		fmt.Fprintf(tw, "CO2\tno estimate\n")
	} else {
		fmt.Fprintf(tw, "Latency\t%.3f ms\n", r.DynamicAnalysis.InferenceLatencyMS)
		fmt.Fprintf(tw, "Power\t%.1f W\n", r.CO2Estimation.PowerWatts)
		fmt.Fprintf(tw, "Energy\t%.3e kWh/inference\n", r.CO2Estimation.EnergyKWh)
		fmt.Fprintf(tw, "CO2\t%.3e g/inference\n", r.CO2Estimation.CO2Grams)
	}

	fmt.Fprintln(tw)
	if len(r.OptimizerSuggestions) == 0 {
		fmt.Fprintln(tw, "No optimization suggestions.")
	} else {
		fmt.Fprintln(tw, "CODE\tIMPACT\tSUGGESTION")
		fmt.Fprintln(tw, "----\t------\t----------")
		for _, s := range r.OptimizerSuggestions {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Code, s.Impact, s.Title)
		}
	}
	tw.Flush()
}

func writeHTML(path string, r *report.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, r); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>co2scope Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
</style>

<h1>co2scope Report</h1>
<p class="small">Run {{.RunID}} &nbsp;|&nbsp; {{.GeneratedAt.Format "2006-01-02 15:04:05"}} UTC</p>

<h2>Inputs</h2>
<ul>
<li>Model: <span class="badge">{{.Inputs.ModelPath}}</span>{{if .Inputs.DemoSubstituted}} (demo model substituted){{end}}</li>
<li>Hardware: {{.Inputs.HardwareType}}</li>
<li>Region: {{.Inputs.Region}}</li>
</ul>

<h2>Static analysis</h2>
<ul>
<li>Trainable parameters: {{.StaticAnalysis.TotalParameters}}</li>
<li>Precisions: {{range .StaticAnalysis.Precisions}}<span class="badge">{{.}}</span>{{end}}</li>
<li>Estimated FLOPs: {{printf "%.3g" .StaticAnalysis.FLOPs.Value}}{{if .StaticAnalysis.FLOPs.Placeholder}} (placeholder){{end}}</li>
</ul>

<h2>Carbon estimation</h2>
{{if .CO2Estimation.Empty}}
<p>The benchmark was unmeasurable; no estimate was produced.</p>
{{else}}
<ul>
<li>Mean latency: {{printf "%.3f" .DynamicAnalysis.InferenceLatencyMS}} ms over {{.DynamicAnalysis.TimedRuns}} runs</li>
<li>Power draw: {{printf "%.1f" .CO2Estimation.PowerWatts}} W</li>
<li>Energy: {{printf "%.3e" .CO2Estimation.EnergyKWh}} kWh/inference</li>
<li>CO2: {{printf "%.3e" .CO2Estimation.CO2Grams}} g/inference</li>
<li>Region factors: PUE {{printf "%.2f" .CO2Estimation.PUE}}, {{printf "%.0f" .CO2Estimation.CarbonIntensity}} g/kWh</li>
</ul>
{{end}}

<h2>Suggestions</h2>
{{if .OptimizerSuggestions}}
<table>
<thead><tr><th>Code</th><th>Impact</th><th>Title</th><th>Description</th></tr></thead>
<tbody>
{{range .OptimizerSuggestions}}
<tr><td>{{.Code}}</td><td>{{.Impact}}</td><td>{{.Title}}</td><td>{{.Description}}</td></tr>
{{end}}
</tbody>
</table>
{{else}}
<p>No optimization suggestions.</p>
{{end}}
</html>`))
