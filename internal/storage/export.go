package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/planets/internal/dynamo"
)

type BodyFrame struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type ExportData struct {
	ID      string             `json:"id"`
	Seed    int64              `json:"seed"`
	G       float64            `json:"g"`
	Ticks   []int              `json:"ticks"`
	Masses  []float64          `json:"masses"`
	Frames  [][]BodyFrame      `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, snapshots []dynamo.Population, ticks []int) ExportData {
	data := ExportData{
		ID:      meta.ID,
		Seed:    meta.Seed,
		G:       meta.G,
		Ticks:   ticks,
		Masses:  meta.Masses,
		Frames:  make([][]BodyFrame, len(snapshots)),
		Metrics: meta.Metrics,
	}

	for i, pop := range snapshots {
		frame := make([]BodyFrame, len(pop))
		for j, b := range pop {
			frame[j] = BodyFrame{X: b.Position.X, Y: b.Position.Y, VX: b.Velocity.X, VY: b.Velocity.Y}
		}
		data.Frames[i] = frame
	}

	return data
}

func ExportJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
