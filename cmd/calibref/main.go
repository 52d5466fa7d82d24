// Package main is a small command line tool around the calibref
// library: it reads matched point pairs (and optionally bounds) from a
// JSON file, solves for the transform between the two frames, and
// prints the result.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/viam-labs/calibref"
)

type boundsConfig struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

type scalarBoundsConfig struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type pairConfig struct {
	P0 []float64 `json:"p0"`
	P1 []float64 `json:"p1"`
}

type calibrationConfig struct {
	Pairs               []pairConfig        `json:"pairs"`
	Bounds              *boundsConfig       `json:"bounds,omitempty"`
	ScalingBounds       *boundsConfig       `json:"scaling_bounds,omitempty"`
	ScalarScalingBounds *scalarBoundsConfig `json:"scalar_scaling_bounds,omitempty"`
}

func main() {
	logger := golog.NewDevelopmentLogger("calibref")
	app := &cli.App{
		Name:  "calibref",
		Usage: "solve for the rigid transform (and optional scaling) between two sets of matched 3D points",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pairs",
				Usage:    "path to a JSON file of matched point pairs",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "scale",
				Usage: "scale mode: none, vector, or scalar",
				Value: "none",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "seed the solve with the closed-form fit of the pairs",
			},
		},
		Action: func(cCtx *cli.Context) error {
			return runCalibration(cCtx, logger)
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func runCalibration(cCtx *cli.Context, logger golog.Logger) error {
	data, err := os.ReadFile(cCtx.String("pairs"))
	if err != nil {
		return err
	}
	var cfg calibrationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, "cannot parse pairs file")
	}

	c := calibref.NewCalibrator(logger)
	for i, pair := range cfg.Pairs {
		if err := c.AddPoint(pair.P0, pair.P1); err != nil {
			return errors.Wrapf(err, "pair %d", i)
		}
	}
	if cfg.Bounds != nil {
		if err := c.SetBounds(cfg.Bounds.Min, cfg.Bounds.Max); err != nil {
			return err
		}
	}
	if cfg.ScalingBounds != nil {
		if err := c.SetScalingBounds(cfg.ScalingBounds.Min, cfg.ScalingBounds.Max); err != nil {
			return err
		}
	}
	if cfg.ScalarScalingBounds != nil {
		if err := c.SetScalarScalingBounds(cfg.ScalarScalingBounds.Min, cfg.ScalarScalingBounds.Max); err != nil {
			return err
		}
	}
	if cCtx.Bool("seed") {
		if err := c.SeedFromPoints(); err != nil {
			return err
		}
	}

	ctx := cCtx.Context
	switch mode := cCtx.String("scale"); mode {
	case "none":
		h, rms, err := c.Calibrate(ctx)
		if err != nil {
			return err
		}
		printMatrix(h.Matrix())
		fmt.Printf("residual rms: %.9g m\n", rms)
	case "vector":
		h, s, rms, err := c.CalibrateWithScale(ctx)
		if err != nil {
			return err
		}
		printMatrix(h.Matrix())
		fmt.Printf("scale: [%.9g %.9g %.9g]\n", s.X, s.Y, s.Z)
		fmt.Printf("residual rms: %.9g m\n", rms)
	case "scalar":
		h, s, rms, err := c.CalibrateWithScalarScale(ctx)
		if err != nil {
			return err
		}
		printMatrix(h.Matrix())
		fmt.Printf("scale: %.9g\n", s)
		fmt.Printf("residual rms: %.9g m\n", rms)
	default:
		return errors.Errorf("unknown scale mode %q", mode)
	}
	return nil
}

func printMatrix(m *mat.Dense) {
	fmt.Printf("H =\n%v\n", mat.Formatted(m, mat.Prefix(""), mat.Squeeze()))
}
