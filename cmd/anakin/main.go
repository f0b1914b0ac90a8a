package main

import (
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/oygx210/anakin"
)

var (
	scenarioFile string
	aboutPoint   []float64
	eulerSeq     []int
	logger       kitlog.Logger
)

func main() {
	logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))

	rootCmd := &cobra.Command{
		Use:   "anakin",
		Short: "rigid body mechanics toolkit",
	}
	rootCmd.PersistentFlags().StringVar(&scenarioFile, "scenario", "", "scenario TOML/YAML file")

	inertiaCmd := &cobra.Command{
		Use:   "inertia",
		Short: "inertia tensors of the scenario bodies",
		RunE:  runInertia,
	}
	inertiaCmd.Flags().Float64SliceVar(&aboutPoint, "about", nil, "transport the tensor to this point (x,y,z)")

	orientationCmd := &cobra.Command{
		Use:   "orientation",
		Short: "Euler angles, quaternion and axis/angle of the scenario bodies",
		RunE:  runOrientation,
	}
	orientationCmd.Flags().IntSliceVar(&eulerSeq, "seq", []int{3, 1, 3}, "intrinsic Euler axis sequence")

	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "mesh statistics of the scenario bodies",
		RunE:  runGeometry,
	}

	rootCmd.AddCommand(inertiaCmd, orientationCmd, geometryCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadBodies() (*anakin.Scenario, []*anakin.RigidBody, error) {
	if scenarioFile == "" {
		return nil, nil, fmt.Errorf("no scenario provided (use --scenario)")
	}
	scenario, err := anakin.LoadScenario(scenarioFile)
	if err != nil {
		return nil, nil, err
	}
	bodies, err := scenario.BuildBodies()
	if err != nil {
		return nil, nil, err
	}
	return scenario, bodies, nil
}

func runInertia(cmd *cobra.Command, args []string) error {
	scenario, bodies, err := loadBodies()
	if err != nil {
		return err
	}
	about := anakin.Origin()
	if len(aboutPoint) == 3 {
		about = anakin.NewPoint(anakin.NewVector64(aboutPoint[0], aboutPoint[1], aboutPoint[2], nil), nil)
	}
	for i, body := range bodies {
		logger.Log("scenario", scenario.Name, "body", scenario.Bodies[i].Name,
			"mass", scenario.Bodies[i].Mass,
			"IG", body.IG(), "I", body.I(about))
	}
	return nil
}

func runOrientation(cmd *cobra.Command, args []string) error {
	scenario, bodies, err := loadBodies()
	if err != nil {
		return err
	}
	var seq [3]int
	if len(eulerSeq) == 3 {
		copy(seq[:], eulerSeq)
	} else {
		seq = anakin.Euler313
	}
	for i, body := range bodies {
		name := scenario.Bodies[i].Name
		basis := body.Basis()
		if θ, err := basis.Euler(nil, seq); err != nil {
			logger.Log("body", name, "euler", err)
		} else {
			logger.Log("body", name, "seq", fmt.Sprint(seq), "theta1", θ[0], "theta2", θ[1], "theta3", θ[2])
		}
		if q, err := basis.Quaternions(nil); err != nil {
			logger.Log("body", name, "quaternion", err)
		} else {
			logger.Log("body", name, "q1", q[0], "q2", q[1], "q3", q[2], "q4", q[3])
		}
		axis, err := basis.RotAxis(nil)
		if err != nil {
			logger.Log("body", name, "axis", err)
			continue
		}
		logger.Log("body", name, "axis", axis, "angle", basis.RotAngle(nil))
	}
	return nil
}

func runGeometry(cmd *cobra.Command, args []string) error {
	scenario, bodies, err := loadBodies()
	if err != nil {
		return err
	}
	for i, body := range bodies {
		mesh := body.Geometry()
		if mesh == nil {
			logger.Log("body", scenario.Bodies[i].Name, "mesh", "none")
			continue
		}
		logger.Log("body", scenario.Bodies[i].Name,
			"vertices", len(mesh.Vertices), "triangles", len(mesh.Triangles),
			"volume", fmt.Sprintf("%.6f", mesh.Volume()))
	}
	return nil
}
