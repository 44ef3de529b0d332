package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/san-kum/planets/internal/export"
	"github.com/san-kum/planets/internal/storage"
	"github.com/spf13/cobra"
)

var (
	svgWidth  int
	svgHeight int
	outFile   string
)

func exportCommands() []*cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render orbits to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	return []*cobra.Command{exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd}
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, snaps, ticks, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(storage.StateHeader(len(snaps[0]))); err != nil {
		return err
	}
	for i, pop := range snaps {
		if err := w.Write(storage.StateRow(ticks[i], pop)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, snaps, ticks, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, storage.NewExportData(meta, snaps, ticks))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, snaps, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.OrbitsToSVG(snaps, svgWidth, svgHeight)
	if outFile == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
