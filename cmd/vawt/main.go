// Command vawt generates NACA airfoil sections and printable turbine meshes.
//
// Usage:
//
//	vawt airfoil [-config vawt.toml] [-out dir] [-formats csv,dxf,xlsx,pdf,png,svg]
//	vawt turbine [-config vawt.toml] [-out dir] [-resolution 200] [-preview]
//
// Design parameters are read from an optional TOML file. Logging and the
// default output directory are set with VAWT_LOG_LEVEL, VAWT_LOG_FORMAT and
// VAWT_OUTPUT_DIR.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soypat/vawt/export"
	"github.com/soypat/vawt/internal/config"
	"github.com/soypat/vawt/render"
	"github.com/soypat/vawt/turbine"
)

const manifestName = "manifest.json"

var errUsage = errors.New("usage: vawt <airfoil|turbine> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		slog.Error("vawt failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML file with design parameters")
	outDir := fs.String("out", "", "output directory (default $VAWT_OUTPUT_DIR or .)")

	var (
		configure = func(*config.Config) {}
		exec      func(*config.Config, *slog.Logger, *export.Manifest) error
	)
	switch cmd {
	case "airfoil":
		formats := fs.String("formats", "csv,dxf,xlsx,pdf,png,svg", "comma separated list of section outputs")
		exec = func(cfg *config.Config, log *slog.Logger, m *export.Manifest) error {
			return airfoil(cfg, log, m, strings.Split(*formats, ","))
		}
	case "turbine":
		resolution := fs.Int("resolution", 0, "mesh cells along the longest axis (default from config)")
		preview := fs.Bool("preview", false, "also write a PNG preview of the mesh")
		configure = func(cfg *config.Config) {
			if *resolution > 0 {
				cfg.Params.Resolution = *resolution
			}
		}
		exec = func(cfg *config.Config, log *slog.Logger, m *export.Manifest) error {
			return turbineMesh(cfg, log, m, *preview)
		}
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	configure(cfg)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	log := cfg.NewLogger(stderr)
	m := export.NewManifest(cmd, cfg.Params)
	log = log.With("run_id", m.RunID)

	start := time.Now()
	if err := exec(cfg, log, m); err != nil {
		return err
	}
	if err := m.Write(filepath.Join(cfg.OutputDir, manifestName)); err != nil {
		return err
	}
	log.Info("done", "artifacts", len(m.Artifacts), "size", m.TotalSize(), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func airfoil(cfg *config.Config, log *slog.Logger, m *export.Manifest, formats []string) error {
	p := cfg.Params
	curve, err := p.Curve()
	if err != nil {
		return err
	}
	base := filepath.Join(cfg.OutputDir, "naca"+p.NACA)
	for _, format := range formats {
		format = strings.TrimSpace(format)
		path := base + "." + format
		switch format {
		case "csv":
			err = writeFile(path, func(w io.Writer) error { return export.WriteCSV(w, curve, p.Chord) })
		case "dxf":
			err = export.WriteDXF(path, curve, p.Chord)
		case "xlsx":
			err = export.WriteXLSX(path, curve, p.Chord)
		case "pdf":
			err = export.WritePDF(path, export.Template{
				Designation: p.NACA,
				Curve:       curve,
				Chord:       p.Chord,
				Sampling:    p.Sampling(),
				RunID:       m.RunID,
			})
		case "png", "svg":
			err = writeFile(path, func(w io.Writer) error {
				return export.WritePlot(w, curve, "NACA "+p.NACA, format)
			})
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", format, err)
		}
		if err := record(log, m, format, path); err != nil {
			return err
		}
	}
	return nil
}

func turbineMesh(cfg *config.Config, log *slog.Logger, m *export.Manifest, preview bool) error {
	p := cfg.Params
	start := time.Now()
	model, _, err := turbine.Build(p)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, "turbine.stl")
	log.Info("rendering", "cells", p.Resolution, "path", path)
	if err := render.CreateSTL(path, render.NewOctreeRenderer(model, p.Resolution)); err != nil {
		return fmt.Errorf("writing STL: %w", err)
	}
	log.Debug("rendered", "elapsed", time.Since(start).Round(time.Millisecond))
	if err := record(log, m, "stl", path); err != nil {
		return err
	}
	if !preview {
		return nil
	}
	png := filepath.Join(cfg.OutputDir, "turbine.png")
	if err := render.PreviewPNG(path, png, render.IsometricView()); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	return record(log, m, "png", png)
}

func record(log *slog.Logger, m *export.Manifest, kind, path string) error {
	a, err := m.Add(kind, path)
	if err != nil {
		return err
	}
	log.Info("wrote", "kind", kind, "path", path, "size", a.Size)
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return write(fp)
}
