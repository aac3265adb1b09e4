package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tsunamilab/vortmesh/MeshSearch"
)

var (
	csvFile string
)

// Reads a CSV of convergence study entries (Title, N, Metric) and reports the
// observed order of accuracy between successive resolutions of each study.
func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	for _, cs := range studies {
		fmt.Printf("Title = %s\n", cs.title)
		for i := range cs.numPTS {
			if i == 0 {
				fmt.Printf("%d, %v\n", cs.numPTS[i], cs.metric[i])
				continue
			}
			p, err := MeshSearch.EstimateRate(cs.numPTS[i-1], cs.metric[i-1], cs.numPTS[i], cs.metric[i])
			if err != nil {
				fmt.Printf("%d, %v, order undefined (%s)\n", cs.numPTS[i], cs.metric[i], err.Error())
				continue
			}
			fmt.Printf("%d, %v, order = %5.2f\n", cs.numPTS[i], cs.metric[i], p)
		}
	}
}

type ConvergenceStudy struct {
	title  string
	numPTS []int
	metric []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, metric float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.metric = append(cs.metric, metric)
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records [][]string
		err     error
		f       *os.File
		ok      bool
		cs      *ConvergenceStudy
		metric  float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, ntxt := rec[0], rec[1]
		n, _ := strconv.Atoi(ntxt)
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		_, _ = fmt.Sscanf(rec[2], "%f", &metric)
		cs.Add(n, metric)
	}
	return
}
