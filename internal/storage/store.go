package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir     string
	now         func() time.Time
	writeEvents func(io.Writer, []trace.Event) error
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now, writeEvents: WriteEvents}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Shape     string             `json:"shape"`
	Size      int                `json:"size"`
	Speed     int                `json:"speed"`
	Events    int                `json:"events"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Metrics   map[string]float64 `json:"metrics"`
}

// RunOptions records how a trace's input was produced.
type RunOptions struct {
	Seed  int64
	Shape string
	Speed int
}

// Save writes tr under a new run directory and returns the run id.
// Swap snapshots are not stored; LoadTrace rebuilds them.
func (s *Store) Save(tr trace.Trace, opts RunOptions) (string, error) {
	if err := tr.Validate(); err != nil {
		return "", err
	}

	ts := s.now()
	runID := fmt.Sprintf("%s_%s", tr.Algorithm, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.writeRun(runDir, tr, RunMetadata{
		ID:        runID,
		Algorithm: tr.Algorithm,
		Timestamp: ts,
		Seed:      opts.Seed,
		Shape:     opts.Shape,
		Size:      len(tr.Initial),
		Speed:     opts.Speed,
		Events:    tr.Len(),
		Initial:   tr.Initial,
		Final:     tr.Final,
		Metrics:   metrics.Collect(tr.Events, metrics.Default()...),
	}); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeRun writes the event log before the metadata, so a run only
// becomes visible to List once both files are complete.
func (s *Store) writeRun(runDir string, tr trace.Trace, meta RunMetadata) error {
	csvFile, err := os.Create(filepath.Join(runDir, eventsFile))
	if err != nil {
		return err
	}
	if err := s.writeEvents(csvFile, tr.Events); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}
	return writeMetadata(filepath.Join(runDir, metadataFile), meta)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteEvents writes events as CSV rows of kind,i,j. The j column is
// empty for single-index events.
func WriteEvents(w io.Writer, events []trace.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "i", "j"}); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{ev.Kind.String(), "", ""}
		for k, idx := range ev.Indices {
			if k > 1 {
				break
			}
			row[k+1] = strconv.Itoa(idx)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEvents parses the output of WriteEvents. Snapshots are not set.
func ReadEvents(r io.Reader) ([]trace.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []trace.Event{}, nil
	}

	events := make([]trace.Event, 0, len(records)-1)
	for line, record := range records[1:] {
		kind, err := trace.ParseKind(record[0])
		if err != nil {
			return nil, fmt.Errorf("storage: line %d: %w", line+2, err)
		}
		ev := trace.Event{Kind: kind, Indices: make([]int, 0, kind.Arity())}
		for _, field := range record[1 : 1+kind.Arity()] {
			idx, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("storage: line %d: %w", line+2, err)
			}
			ev.Indices = append(ev.Indices, idx)
		}
		events = append(events, ev)
	}
	return events, nil
}

// List returns the stored runs, oldest first. Unreadable run directories
// are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reassembles a stored run into a validated trace with swap
// snapshots recomputed from the initial array.
func (s *Store) LoadTrace(runID string) (trace.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return trace.Trace{}, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		return trace.Trace{}, err
	}
	defer f.Close()

	events, err := ReadEvents(f)
	if err != nil {
		return trace.Trace{}, err
	}

	tr := trace.Trace{
		Algorithm: meta.Algorithm,
		Initial:   meta.Initial,
		Events:    events,
		Final:     meta.Final,
	}
	if err := tr.Validate(); err != nil {
		return trace.Trace{}, err
	}

	array := append([]int(nil), tr.Initial...)
	for i, ev := range tr.Events {
		if ev.Kind != trace.Swap {
			continue
		}
		a, b := ev.Indices[0], ev.Indices[1]
		array[a], array[b] = array[b], array[a]
		tr.Events[i].Snapshot = append([]int(nil), array...)
	}
	return tr, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
