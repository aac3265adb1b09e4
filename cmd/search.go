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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsunamilab/vortmesh/InputParameters"
	"github.com/tsunamilab/vortmesh/MeshSearch"
	"github.com/tsunamilab/vortmesh/model_problems/VorticityStream"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Adaptive mesh-convergence search",
	Long: `
Finds the coarsest resolution whose solution meets the convergence tolerance,
starting from NCoarse and bounded by NMax. Each iteration is logged as it
happens.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("search called")
		icFile, err := cmd.Flags().GetString("inputConditionsFile")
		if err != nil {
			panic(err)
		}
		sp := &InputParameters.SearchParameters{}
		processSolveInput(icFile, sp)
		if err = sp.Validate(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		sp.Print()
		RunSearch(sp, os.Stdout)
	},
}

func RunSearch(sp *InputParameters.SearchParameters, out io.Writer) {
	cache := MeshSearch.NewCache(func(p *InputParameters.SolveParameters) (*VorticityStream.SolveResult, error) {
		return VorticityStream.Run(p, nil)
	}, sp.CacheEnabled)
	c := MeshSearch.NewController(sp, cache, MeshSearch.NewWriterSink(out))
	res, err := c.Run()
	if err != nil {
		var see *MeshSearch.SearchExhaustedError
		if errors.As(err, &see) {
			fmt.Fprintf(out, "search exhausted: %s\n", see.Error())
		} else {
			fmt.Printf("error: %s\n", err.Error())
		}
		os.Exit(1)
	}
	fmt.Fprintf(out, "converged: N = %d, metric = %g, solves cached = %d, total = %v\n",
		res.NStar, res.FinalMetric, cache.Len(), res.TotalTime)
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for search parameters like:\n\t- NCoarse, NMax\n\t- Tolerance\n\t- BinarySearch, CacheEnabled")
}
