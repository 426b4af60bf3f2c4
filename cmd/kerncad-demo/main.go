// Command kerncad-demo builds a bracket from primitives and booleans,
// meshes it, and emits a Fanuc-dialect surfacing program for it.
package main

import (
	"fmt"
	"log"

	"github.com/basswood/kerncad/pkg/cam"
	"github.com/basswood/kerncad/pkg/feature"
	"github.com/basswood/kerncad/pkg/gcode"
	"github.com/basswood/kerncad/pkg/mesh"
	"github.com/basswood/kerncad/pkg/sdf"
)

func main() {
	fmt.Println("Building bracket...")

	outer, err := sdf.Box(150, 80, 40)
	if err != nil {
		log.Fatal(err)
	}
	pocket, err := sdf.Box(120, 60, 25)
	if err != nil {
		log.Fatal(err)
	}
	post, err := sdf.Cylinder(5, 50)
	if err != nil {
		log.Fatal(err)
	}

	bracket := outer.
		Subtract(pocket.Translate(0, 0, 15), "pocket").
		Subtract(post.Translate(-30, 0, 0), "post_left").
		Subtract(post.Translate(30, 0, 0), "post_right").
		Round(2)

	bracket, err = feature.BoltCircle(bracket, "top", feature.BoltCircleOptions{
		Count:              4,
		BoltCircleDiameter: 30,
		HoleDiameter:       4,
		Depth:              8,
	})
	if err != nil {
		log.Fatal(err)
	}

	bounds := bracket.Bounds()
	fmt.Printf("Bracket bounds: min(%.1f, %.1f, %.1f) max(%.1f, %.1f, %.1f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)

	triMesh, err := mesh.MarchingCubes(bracket, 1.0, nil, 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Meshed bracket: %d triangles\n", triMesh.TriangleCount())

	log.Printf("generating raster surfacing pass")
	tool := cam.ToolDefinition{Radius: 5}
	toolpath, err := cam.GenerateRasterSurfacing(bracket, tool, cam.Params{
		Direction:   cam.DirectionX,
		StepoverPct: 40,
		FeedRate:    1800,
		RPM:         9000,
		SafeZ:       bounds.Max.Y + 15,
		ApproachZ:   10,
		ZTop:        bounds.Max.Y + 15,
		ZBottom:     bounds.Min.Y,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Toolpath: %d points, %d passes, %.1f min estimated\n",
		len(toolpath.Points), toolpath.PassCount, toolpath.EstimatedMinutes)

	program, err := gcode.EmitFanucGCode(toolpath, gcode.Config{
		FeedRate:     1800,
		RPM:          9000,
		SafeZ:        bounds.Max.Y + 15,
		ToolDiameter: 10,
		ShapeName:    "bracket",
		StepoverPct:  40,
		Logger:       log.Default(),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nG-code program:")
	fmt.Println(program)
}
