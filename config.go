package anakin

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// BodyDefinition is one rigid body entry of a scenario file.
type BodyDefinition struct {
	Name       string
	Shape      string    // box, sphere, cylinder, custom
	Mass       float64
	Dimensions []float64 // box: lx ly lz; sphere: r; cylinder: r h
	Inertia    []float64 // 9 entries row-major, custom shape only
	Position   []float64 // 3 entries, canonical frame
	Euler      []float64 // 3 intrinsic 3-1-3 angles in radians
	Quaternion []float64 // 4 entries scalar last; overrides Euler
}

// Scenario is a set of rigid bodies loaded from a TOML or YAML file.
type Scenario struct {
	Name   string
	Bodies []BodyDefinition
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	scenario := Scenario{Name: v.GetString("name")}
	if err := v.UnmarshalKey("bodies", &scenario.Bodies); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Bodies) == 0 {
		return nil, fmt.Errorf("scenario %s: %w: no bodies", path, ErrInvalidArguments)
	}
	return &scenario, nil
}

// Body constructs the rigid body described by the definition.
func (d BodyDefinition) Body() (*RigidBody, error) {
	var body *RigidBody
	switch strings.ToLower(d.Shape) {
	case "box":
		if len(d.Dimensions) != 3 {
			return nil, fmt.Errorf("body %s: %w: box needs 3 dimensions", d.Name, ErrShapeMismatch)
		}
		body = NewBoxBody(Num(d.Mass), Num(d.Dimensions[0]), Num(d.Dimensions[1]), Num(d.Dimensions[2]))
	case "sphere":
		if len(d.Dimensions) != 1 {
			return nil, fmt.Errorf("body %s: %w: sphere needs 1 dimension", d.Name, ErrShapeMismatch)
		}
		body = NewSphereBody(Num(d.Mass), Num(d.Dimensions[0]))
	case "cylinder":
		if len(d.Dimensions) != 2 {
			return nil, fmt.Errorf("body %s: %w: cylinder needs 2 dimensions", d.Name, ErrShapeMismatch)
		}
		body = NewCylinderBody(Num(d.Mass), Num(d.Dimensions[0]), Num(d.Dimensions[1]))
	case "custom", "":
		if len(d.Inertia) != 9 {
			return nil, fmt.Errorf("body %s: %w: custom shape needs a 9-entry inertia tensor", d.Name, ErrShapeMismatch)
		}
		ig, err := NewM33(d.Inertia)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", d.Name, err)
		}
		body, err = NewRigidBody(d.Mass, ig)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", d.Name, err)
		}
	default:
		return nil, fmt.Errorf("body %s: %w: unknown shape %q", d.Name, ErrInvalidArguments, d.Shape)
	}
	basis, err := d.orientation()
	if err != nil {
		return nil, fmt.Errorf("body %s: %w", d.Name, err)
	}
	parts := []interface{}{body, basis}
	if d.Position != nil {
		parts = append(parts, d.Position)
	}
	return NewRigidBody(parts...)
}

func (d BodyDefinition) orientation() (*Basis, error) {
	switch {
	case len(d.Quaternion) == 4:
		return NewBasisOf(d.Quaternion)
	case len(d.Quaternion) != 0:
		return nil, fmt.Errorf("%w: quaternion needs 4 entries", ErrShapeMismatch)
	case len(d.Euler) == 3:
		return Canonical().
			RotateZ(Num(d.Euler[0])).
			RotateX(Num(d.Euler[1])).
			RotateZ(Num(d.Euler[2])), nil
	case len(d.Euler) != 0:
		return nil, fmt.Errorf("%w: euler needs 3 entries", ErrShapeMismatch)
	}
	return Canonical(), nil
}

// BuildBodies constructs every body in the scenario, in file order.
func (s *Scenario) BuildBodies() ([]*RigidBody, error) {
	bodies := make([]*RigidBody, len(s.Bodies))
	for i, def := range s.Bodies {
		body, err := def.Body()
		if err != nil {
			return nil, err
		}
		bodies[i] = body
	}
	return bodies, nil
}
