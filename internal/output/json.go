package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/tally"
	"github.com/canadavotes/canadavotes/internal/view"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps the rendered results with metadata.
type JSONEnvelope struct {
	Metadata JSONMetadata             `json:"metadata"`
	Bounds   JSONBounds               `json:"bounds"`
	Legend   []colorscale.LegendEntry `json:"legend"`
	Ridings  []JSONRiding             `json:"ridings"`
}

// JSONMetadata describes the view that produced the results.
type JSONMetadata struct {
	Mode        string    `json:"mode"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Year        int       `json:"year"`
	Parties     [2]string `json:"parties"`
	Polls       int       `json:"polls"`
	EmptyPolls  int       `json:"empty_polls"`
	GeneratedAt string    `json:"generated_at"`
}

// JSONBounds is the colour scale calibration.
type JSONBounds struct {
	MaxShare [2]float64 `json:"max_share"`
	MaxDiff  [2]float64 `json:"max_diff"`
}

// JSONRiding is one riding's results and poll styles.
type JSONRiding struct {
	ID      string                    `json:"id"`
	Name    string                    `json:"name"`
	Results []tally.RidingVoteSummary `json:"results"`
	Polls   []JSONPoll                `json:"polls"`
}

// JSONPoll is one poll's shares and fill colour.
type JSONPoll struct {
	Index  int        `json:"index"`
	Poll   string     `json:"poll"`
	Shares [2]float64 `json:"shares"`
	Fill   string     `json:"fill"`
	Empty  bool       `json:"empty,omitempty"`
}

// JSONFormatter writes the rendering as a JSON object with a metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	Compact bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Extension returns the file extension.
func (f *JSONFormatter) Extension() string {
	return ".json"
}

// Format writes the rendering as a JSON document. Output is pretty-printed
// for terminals and buffers and compact for pipes and files, unless Compact
// is set.
func (f *JSONFormatter) Format(r *view.Rendering, w io.Writer) error {
	if err := nilRendering(r); err != nil {
		return err
	}

	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	v := r.View
	env := JSONEnvelope{
		Metadata: JSONMetadata{
			Mode:        v.Mode.String(),
			Description: v.Mode.Description(),
			City:        v.City,
			Year:        v.Year,
			Parties:     v.Parties,
			Polls:       r.Bounds.Polls,
			EmptyPolls:  r.Bounds.EmptyPolls,
			GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		},
		Bounds: JSONBounds{MaxShare: r.Bounds.MaxShare, MaxDiff: r.Bounds.MaxDiff},
		Legend: r.Legend,
	}
	env.Ridings = make([]JSONRiding, 0, len(r.Ridings))
	for _, l := range r.Ridings {
		jr := JSONRiding{ID: l.ID, Name: l.Name, Results: l.Summary.Rows}
		if jr.Results == nil {
			jr.Results = []tally.RidingVoteSummary{}
		}
		jr.Polls = make([]JSONPoll, 0, len(l.Polls))
		for _, p := range l.Polls {
			jr.Polls = append(jr.Polls, JSONPoll{
				Index:  p.Ref.Index,
				Poll:   p.Properties.PollLabel(v.Mode.Ontario),
				Shares: p.Shares,
				Fill:   p.Fill,
				Empty:  p.Empty,
			})
		}
		env.Ridings = append(env.Ridings, jr)
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(env)
	} else {
		data, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// shouldCompact pretty-prints for terminals and non-file writers and
// compacts for pipes and regular files.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := file.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
