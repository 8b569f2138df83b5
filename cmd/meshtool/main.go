// meshtool is a CLI utility for inspecting, generating and rendering meshes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/facet/internal/app"
	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/internal/engine/camera"
	"github.com/Faultbox/facet/internal/engine/gpu/softgpu"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/engine/window"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/formats"
	fmath "github.com/Faultbox/facet/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "sphere":
		err = cmdSphere(os.Stdout, args)
	case "render":
		err = cmdRender(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info [-w] <file.obj>                   Show mesh statistics (-w lists warnings)
  sphere [-lon N] [-lat N] [-r R] [-o F] Write a UV sphere as OBJ
  render [options] [file.obj]            Render a mesh or the configured scene to PNG

Render options:
  -o out.png      Output file (default render.png)
  -size WxH       Image size (default 512x512)
  -ss N           Supersampling factor (default from config)
  -config path    Config file for scene, camera and ambient light

Examples:
  meshtool info assets/models/suzanne.obj
  meshtool sphere -lon 32 -lat 16 -o sphere.obj
  meshtool render -o suzanne.png assets/models/suzanne.obj`)
}

func cmdInfo(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	showWarnings := fs.Bool("w", false, "List every parse warning")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: meshtool info [-w] <file.obj>")
	}

	obj, err := formats.ParseOBJFile(fs.Arg(0))
	if err != nil {
		return err
	}

	minP, maxP := bounds(obj)

	fmt.Fprintf(out, "File:       %s\n", fs.Arg(0))
	if obj.Name != "" {
		fmt.Fprintf(out, "Name:       %s\n", obj.Name)
	}
	fmt.Fprintf(out, "Vertices:   %d\n", len(obj.Vertices))
	fmt.Fprintf(out, "Normals:    %d\n", len(obj.Normals))
	fmt.Fprintf(out, "TexCoords:  %d\n", len(obj.TexCoords))
	fmt.Fprintf(out, "Triangles:  %d\n", obj.TriangleCount())
	fmt.Fprintf(out, "Smooth:     %v\n", obj.Smooth)
	fmt.Fprintf(out, "Bounds:     %v .. %v\n", minP, maxP)
	fmt.Fprintf(out, "Warnings:   %d\n", len(obj.Warnings))

	if len(obj.Warnings) > 0 && !*showWarnings {
		counts := make(map[formats.WarningKind]int)
		for _, w := range obj.Warnings {
			counts[w.Kind]++
		}
		for kind := formats.WarnUnknownRecord; kind <= formats.WarnNameSkipped; kind++ {
			if counts[kind] > 0 {
				fmt.Fprintf(out, "  %-14s %d\n", kind, counts[kind])
			}
		}
	}
	if *showWarnings {
		for _, w := range obj.Warnings {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
	return nil
}

func bounds(obj *formats.OBJ) (minP, maxP fmath.Vec3) {
	for i, v := range obj.Vertices {
		p := v.Position
		if i == 0 {
			minP, maxP = p, p
			continue
		}
		minP = fmath.Vec3{X: gomath.Min(minP.X, p.X), Y: gomath.Min(minP.Y, p.Y), Z: gomath.Min(minP.Z, p.Z)}
		maxP = fmath.Vec3{X: gomath.Max(maxP.X, p.X), Y: gomath.Max(maxP.Y, p.Y), Z: gomath.Max(maxP.Z, p.Z)}
	}
	return minP, maxP
}

func cmdSphere(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("sphere", flag.ContinueOnError)
	lon := fs.Int("lon", 16, "Longitude rings")
	lat := fs.Int("lat", 8, "Latitude rings")
	radius := fs.Float64("r", 1, "Radius")
	output := fs.String("o", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := mesh.SphereGeometry(*lon, *lat, *radius)
	if err != nil {
		return err
	}
	obj := g.OBJ(fmt.Sprintf("sphere_%dx%d", *lon, *lat))

	if *output == "" {
		return formats.WriteOBJ(out, obj)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := formats.WriteOBJ(f, obj); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d vertices, %d triangles)\n", *output, g.VertexCount(), len(g.Indices)/3)
	return nil
}

func cmdRender(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "render.png", "Output PNG")
	size := fs.String("size", "512x512", "Image size WxH")
	ss := fs.Int("ss", 0, "Supersampling factor")
	configPath := fs.String("config", "", "Config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(*size), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("invalid size %q", *size)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *ss > 0 {
		cfg.Render.Supersample = *ss
	}
	logger.InitWriter("warn", os.Stderr)

	file := fs.Arg(0)
	if file != "" {
		cfg.Assets.Paths = []string{filepath.Dir(file)}
		cfg.Scene.Models = []config.ModelConfig{{
			Name: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
			Kind: config.KindOBJ,
			Mesh: filepath.Base(file),
		}}
	}

	dev := softgpu.New(w, h, max(cfg.Render.Supersample, 1))
	surface := window.NewHeadless(w, h, 1)
	a, err := app.NewWith(cfg, surface, dev)
	if err != nil {
		return err
	}
	defer a.Close()

	if file != "" {
		models := a.Models()
		if len(models) == 0 {
			return fmt.Errorf("%s: no mesh loaded", file)
		}
		cam := a.Engine().Renderer().Camera()
		b := models[0].Mesh().Bounds()
		orbit := camera.NewOrbit()
		orbit.FitToBounds(b.Min, b.Max, cam.FOV())
		cam.SetPlanes(orbit.Distance/100, orbit.Distance*10)
		orbit.Apply(cam)
	}

	if err := a.Run(context.Background()); err != nil {
		return err
	}
	if err := dev.SavePNG(*output); err != nil {
		return err
	}
	fmt.Fprintf(out, "Rendered %s (%dx%d, %d draws)\n", *output, w, h, dev.Draws())
	return nil
}
