package InputParameters

import (
	"fmt"
	"math"
	"strings"

	"sigs.k8s.io/yaml"
)

// ConfigurationError reports an invalid option at the configuration boundary.
// The core solver and search packages assume validated parameters and never
// re-check these bounds.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Reason)
}

// Methods recognized by the solver. The finite difference path is the only
// one implemented; the field exists so parameter files remain explicit about
// what they ran.
const MethodFiniteDifference = "FiniteDifference"

// SolveParameters configures one single-resolution solve, obtained from the
// YAML input file.
type SolveParameters struct {
	Title          string    `yaml:"Title"`
	Nx             int       `yaml:"Nx"`
	Ny             int       `yaml:"Ny"`
	Lx             float64   `yaml:"Lx"`
	Ly             float64   `yaml:"Ly"`
	Nu             float64   `yaml:"Nu"`
	Dt             float64   `yaml:"Dt"`
	FinalTime      float64   `yaml:"FinalTime"`
	Method         string    `yaml:"Method"`
	ICType         string    `yaml:"ICType"`
	ICCoefficients []float64 `yaml:"ICCoefficients"`
	SnapshotTimes  []float64 `yaml:"SnapshotTimes"`
}

// Parse decodes a YAML parameter file. Unknown or misspelled fields are
// rejected, not ignored: a typo like "Tollerance" must fail loudly instead of
// silently running with the default.
func (sp *SolveParameters) Parse(data []byte) error {
	if err := yaml.UnmarshalStrict(data, sp); err != nil {
		return &ConfigurationError{"input file", err.Error()}
	}
	return nil
}

func (sp *SolveParameters) Validate() error {
	if sp.Nx < 2 || sp.Ny < 2 {
		return &ConfigurationError{"Nx/Ny", "grid dimensions must be at least 2"}
	}
	if sp.Lx <= 0 || sp.Ly <= 0 {
		return &ConfigurationError{"Lx/Ly", "domain lengths must be positive"}
	}
	if sp.Nu < 0 || math.IsNaN(sp.Nu) {
		return &ConfigurationError{"Nu", "viscosity must be non-negative"}
	}
	if sp.Dt <= 0 {
		return &ConfigurationError{"Dt", "time step must be positive"}
	}
	if sp.FinalTime < 0 {
		return &ConfigurationError{"FinalTime", "final time must be non-negative"}
	}
	if sp.Method == "" {
		sp.Method = MethodFiniteDifference
	}
	if sp.Method != MethodFiniteDifference {
		return &ConfigurationError{"Method", fmt.Sprintf("unrecognized method %q", sp.Method)}
	}
	if sp.ICType == "" {
		return &ConfigurationError{"ICType", "an initial condition name is required"}
	}
	for _, ts := range sp.SnapshotTimes {
		if ts < 0 || ts > sp.FinalTime {
			return &ConfigurationError{"SnapshotTimes", fmt.Sprintf("snapshot time %g outside [0, FinalTime]", ts)}
		}
	}
	return nil
}

func (sp *SolveParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("%d x %d\t\t= Grid (Nx x Ny)\n", sp.Nx, sp.Ny)
	fmt.Printf("%8.5f x %8.5f\t= Domain (Lx x Ly)\n", sp.Lx, sp.Ly)
	fmt.Printf("%8.3g\t\t= Nu\n", sp.Nu)
	fmt.Printf("%8.3g\t\t= Dt\n", sp.Dt)
	fmt.Printf("%8.5f\t\t= FinalTime\n", sp.FinalTime)
	fmt.Printf("[%s]\t= Method\n", sp.Method)
	fmt.Printf("[%s] %v\t= ICType, coefficients\n", sp.ICType, sp.ICCoefficients)
}

// SearchParameters configures the adaptive mesh-convergence controller. The
// embedded solve parameters act as the template for each candidate
// resolution; Nx/Ny are overridden per candidate.
type SearchParameters struct {
	SolveParameters
	NCoarse         int     `yaml:"NCoarse"`
	NMax            int     `yaml:"NMax"`
	BracketFactor   int     `yaml:"BracketFactor"`
	Tolerance       float64 `yaml:"Tolerance"`
	BinarySearch    bool    `yaml:"BinarySearch"`
	CacheEnabled    bool    `yaml:"CacheEnabled"`
	MaxPairAttempts int     `yaml:"MaxPairAttempts"`
}

// DefaultSearchParameters are the values applied to fields left zero in the
// input file.
func (sp *SearchParameters) ApplyDefaults() {
	if sp.BracketFactor == 0 {
		sp.BracketFactor = 2
	}
	if sp.MaxPairAttempts == 0 {
		sp.MaxPairAttempts = 3
	}
	if sp.Nx == 0 {
		sp.Nx = sp.NCoarse
	}
	if sp.Ny == 0 {
		sp.Ny = sp.NCoarse
	}
}

// Parse decodes a YAML search parameter file, rejecting unknown fields.
func (sp *SearchParameters) Parse(data []byte) error {
	if err := yaml.UnmarshalStrict(data, sp); err != nil {
		return &ConfigurationError{"input file", err.Error()}
	}
	return nil
}

func (sp *SearchParameters) Validate() error {
	sp.ApplyDefaults()
	if err := sp.SolveParameters.Validate(); err != nil {
		return err
	}
	if sp.NCoarse < 2 {
		return &ConfigurationError{"NCoarse", "starting resolution must be at least 2"}
	}
	if sp.NMax < 2*sp.NCoarse {
		return &ConfigurationError{"NMax", "resolution budget must allow at least one refinement (NMax >= 2*NCoarse)"}
	}
	if sp.BracketFactor < 2 {
		return &ConfigurationError{"BracketFactor", "bracket growth factor must be at least 2"}
	}
	if !(sp.Tolerance > 0) {
		return &ConfigurationError{"Tolerance", "tolerance must be positive"}
	}
	if sp.MaxPairAttempts < 1 {
		return &ConfigurationError{"MaxPairAttempts", "at least one initial pair attempt is required"}
	}
	return nil
}

func (sp *SearchParameters) Print() {
	sp.SolveParameters.Print()
	fmt.Printf("%d -> %d\t\t= NCoarse -> NMax\n", sp.NCoarse, sp.NMax)
	fmt.Printf("%8.3g\t\t= Tolerance\n", sp.Tolerance)
	fmt.Printf("%d\t\t\t= BracketFactor\n", sp.BracketFactor)
	fmt.Printf("[binary=%v cache=%v]\t= Search options\n", sp.BinarySearch, sp.CacheEnabled)
}

// CacheKey is the canonical string of the full parameter tuple; identical
// keys are guaranteed to describe identical solves. Title and SnapshotTimes
// are deliberately excluded: neither affects the computed fields, so solves
// differing only in requested outputs share one key (and one cached result,
// including its Snapshots).
func (sp *SolveParameters) CacheKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nx=%d;Ny=%d;Lx=%.17g;Ly=%.17g;Nu=%.17g;Dt=%.17g;T=%.17g;IC=%s;Method=%s;C=",
		sp.Nx, sp.Ny, sp.Lx, sp.Ly, sp.Nu, sp.Dt, sp.FinalTime, sp.ICType, sp.Method)
	for _, c := range sp.ICCoefficients {
		fmt.Fprintf(&b, "%.17g,", c)
	}
	return b.String()
}
