package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/trace"
)

type EventData struct {
	Kind    string `json:"kind"`
	Indices []int  `json:"indices"`
}

type ExportData struct {
	ID        string             `json:"id,omitempty"`
	Algorithm string             `json:"algorithm"`
	Seed      int64              `json:"seed"`
	Shape     string             `json:"shape,omitempty"`
	Size      int                `json:"size"`
	Steps     int                `json:"steps"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Events    []EventData        `json:"events"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewExportData(meta *storage.RunMetadata, tr trace.Trace) ExportData {
	data := ExportData{
		Algorithm: tr.Algorithm,
		Size:      len(tr.Initial),
		Steps:     tr.Len(),
		Initial:   tr.Initial,
		Final:     tr.Final,
		Events:    make([]EventData, len(tr.Events)),
	}
	if meta != nil {
		data.ID = meta.ID
		data.Seed = meta.Seed
		data.Shape = meta.Shape
		data.Metrics = meta.Metrics
	}
	for i, ev := range tr.Events {
		data.Events[i] = EventData{Kind: ev.Kind.String(), Indices: ev.Indices}
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
