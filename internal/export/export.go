// Package export renders many selections to static files concurrently.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/loader"
	"github.com/canadavotes/canadavotes/internal/output"
	"github.com/canadavotes/canadavotes/internal/testable"
	"github.com/canadavotes/canadavotes/internal/view"
)

// DefaultConcurrency bounds the number of jobs rendered at once.
const DefaultConcurrency = 4

// IndexFile is the page linking every exported map.
const IndexFile = "index.html"

// Job is one map to export.
type Job struct {
	Mode    election.Mode
	City    string
	Year    int
	Parties [2]string
}

// Path returns the job's output path without extension, relative to the
// output directory: <mode>/<city>_<year>.
func (j Job) Path() string {
	return filepath.Join(j.Mode.String(), fmt.Sprintf("%s_%d", j.City, j.Year))
}

// Result reports the outcome of one job.
type Result struct {
	Job      Job
	Files    []string
	Err      error
	Duration time.Duration
}

// Exporter writes each job in every configured format below OutDir.
type Exporter struct {
	Source      loader.Source
	Palette     *colorscale.Palette
	Formats     []output.Formatter
	OutDir      string
	FS          testable.FileSystem
	Concurrency int
}

// Run exports jobs with bounded concurrency and writes an index page. A
// failed job does not stop the others; the returned error joins every job
// failure. Results are in job order.
func (e *Exporter) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	fsys := e.FS
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	formats := e.Formats
	if len(formats) == 0 {
		formats = defaultFormats()
	}
	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]Result, len(jobs))
	var (
		mu   sync.Mutex
		errs []error
	)
	addError := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			files, err := e.export(gctx, fsys, formats, job)
			results[i] = Result{Job: job, Files: files, Err: err, Duration: time.Since(start)}
			if err != nil {
				slog.Warn("export failed", "job", job.Path(), "error", err)
				addError(fmt.Errorf("%s: %w", job.Path(), err))
				return nil
			}
			slog.Info("exported", "job", job.Path(), "files", len(files), "duration", results[i].Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	if err := e.writeIndex(fsys, results); err != nil {
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}

func (e *Exporter) export(ctx context.Context, fsys testable.FileSystem, formats []output.Formatter, job Job) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, _ := view.Transition(view.New(job.Mode), view.Selection{City: job.City, Year: job.Year, Parties: job.Parties})
	b, err := loader.New(e.Source).Load(ctx, loader.Request{
		Generation: v.Generation,
		Mode:       job.Mode,
		City:       v.City,
		Year:       v.Year,
	})
	if err != nil {
		return nil, err
	}
	v, _ = v.WithBundle(v.Generation, b)
	r, err := view.Render(v, e.Palette)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(e.OutDir, job.Path())
	if err := fsys.MkdirAll(filepath.Dir(base), 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	var files []string
	for _, f := range formats {
		var buf bytes.Buffer
		if err := f.Format(r, &buf); err != nil {
			return files, fmt.Errorf("format %s: %w", f.Name(), err)
		}
		name := base + output.Extension(f)
		if err := fsys.WriteFile(name, buf.Bytes(), 0o600); err != nil {
			return files, fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

func defaultFormats() []output.Formatter {
	return []output.Formatter{output.NewHTMLFormatter(), output.NewGeoJSONFormatter()}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Canada votes</title></head>
<body>
<h1>Canada votes</h1>
{{range .}}<h2>{{.Mode}}</h2>
<ul>
{{range .Links}}<li><a href="{{.Href}}">{{.Text}}</a></li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type indexSection struct {
	Mode  string
	Links []indexLink
}

type indexLink struct {
	Href string
	Text string
}

// writeIndex links the HTML page of every successful job, grouped by mode.
func (e *Exporter) writeIndex(fsys testable.FileSystem, results []Result) error {
	byMode := map[string][]indexLink{}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, f := range res.Files {
			if filepath.Ext(f) != ".html" {
				continue
			}
			rel, err := filepath.Rel(e.OutDir, f)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			mode := res.Job.Mode.String()
			byMode[mode] = append(byMode[mode], indexLink{
				Href: filepath.ToSlash(rel),
				Text: fmt.Sprintf("%s %d", res.Job.City, res.Job.Year),
			})
		}
	}

	sections := make([]indexSection, 0, len(byMode))
	for mode, links := range byMode {
		sort.Slice(links, func(i, j int) bool { return links[i].Href < links[j].Href })
		sections = append(sections, indexSection{Mode: mode, Links: links})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Mode < sections[j].Mode })

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, sections); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := fsys.MkdirAll(e.OutDir, 0o750); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := fsys.WriteFile(filepath.Join(e.OutDir, IndexFile), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}
