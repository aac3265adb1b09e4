/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Single-resolution vorticity-streamfunction solve",
	Long:  `Runs one solve at the resolution given in the input parameters file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("solve called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		sp := &InputParameters.SolveParameters{}
		processSolveInput(icFile, sp)
		if err = sp.Validate(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		sp.Print()
		res, err := VorticityStream.Run(sp, os.Stdout)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		printDiagnostics(res)
	},
}

func processSolveInput(icFile string, sp interface{ Parse([]byte) error }) {
	if len(icFile) == 0 {
		fmt.Printf("error: must supply an input parameters file (-I, --inputConditionsFile)\n")
		exampleFile := `
########################################
Title: "Lamb-Oseen vortex"
Nx: 64
Ny: 64
Lx: 1.
Ly: 1.
Nu: 0.001
Dt: 0.0005
FinalTime: 1.
ICType: LambOseen # Can be "TaylorGreen", "VortexPair", "MultiVortex", "StretchedGaussian"
ICCoefficients: [0.5, 0.5, 1., 0.1]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(icFile)
	if err != nil {
		panic(err)
	}
	if err = sp.Parse(data); err != nil {
		panic(err)
	}
}

func printDiagnostics(res *VorticityStream.SolveResult) {
	d := res.Diagnostics
	fmt.Printf("%12.6g\t= Peak Vorticity\n", d.PeakVorticity)
	fmt.Printf("%12.6g\t= Enstrophy\n", d.Enstrophy)
	fmt.Printf("%12.6g\t= Energy\n", d.Energy)
	fmt.Printf("%12.6g\t= Peak Speed\n", d.PeakSpeed)
	fmt.Printf("%12.6g\t= Circulation\n", d.Circulation)
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Nx, Ny\n\t- Nu\n\t- Dt, FinalTime")
}
