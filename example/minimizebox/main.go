package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akmonengine/orient"
	"github.com/akmonengine/orient/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// BuildPlank samples the surface of a 10 x 10 x 1 box, rotated 45°
// around Z so its world bounding box is far from minimal.
func BuildPlank() (geom.PointCloud, geom.Euler) {
	initial := geom.EulerFromDegrees(0, 0, 45)
	rot := initial.Mat3()

	var cloud geom.PointCloud
	for x := -5.0; x <= 5.0; x += 1.0 {
		for y := -5.0; y <= 5.0; y += 1.0 {
			for _, z := range []float64{-0.5, 0.5} {
				cloud = append(cloud, rot.Mul3x1(mgl64.Vec3{x, y, z}))
			}
		}
	}

	return cloud, initial
}

func main() {
	cloud, initial := BuildPlank()
	before := geom.Compute(cloud)

	fmt.Println("Bounding box minimization demo")
	fmt.Println("==============================")
	fmt.Printf("Vertices: %d\n", len(cloud))
	fmt.Printf("Initial rotation: %v degrees\n", initial.Degrees())
	fmt.Printf("Initial AABB: %.2f x %.2f x %.2f (volume %.2f)\n",
		before.Width, before.Depth, before.Height, before.Volume)
	fmt.Println()

	cfg := orient.DefaultConfig()
	cfg.Workers = 4
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider := orient.NewPointCloudProvider(cloud, initial)
	optimizer := orient.New(cloud, provider, cfg)

	result, err := optimizer.Optimize(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "optimization failed:", err)
		os.Exit(1)
	}

	after, _ := provider.Measure()

	fmt.Println()
	fmt.Printf("Best rotation: %v degrees\n", result.Rotation)
	fmt.Printf("Final AABB: %.2f x %.2f x %.2f (volume %.2f)\n",
		after.Width, after.Depth, after.Height, after.Volume)
	fmt.Printf("Reduction: %.1f%% over %d evaluations in %s\n",
		result.ReductionPercent, result.Evaluations, result.Elapsed)
}
