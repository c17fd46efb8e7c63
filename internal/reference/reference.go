// Package reference loads historical voting series and scores simulated
// trajectories against them.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

const (
	// Millions is the unit of the published series.
	Millions = 1e6

	// BaseYear is t=0 on the simulation clock.
	BaseYear = 1932

	// ElectionInterval is used for rows without a year column.
	ElectionInterval = 4.0
)

var (
	ErrMissingColumn = errors.New("reference: missing column")
	ErrNoOverlap     = errors.New("reference: no series point inside the trajectory")
)

var columns = [3]string{"non-partisan", "dem", "rep"}

// Series holds observed country-1 compartments, in persons, at simulation times.
type Series struct {
	Times        []float64
	Unaffiliated []float64
	Dem          []float64
	Rep          []float64
}

func (s *Series) Len() int { return len(s.Times) }

func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV with Non-partisan, Dem and Rep columns in millions. An
// optional Year column sets the time as year-BaseYear; otherwise row i sits
// at t = 4(i+1).
func Read(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reference: read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var cols [3]int
	for i, name := range columns {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols[i] = c
	}
	yearCol, hasYear := idx["year"]

	s := &Series{}
	for row := 1; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reference: row %d: %w", row, err)
		}

		var vals [3]float64
		for i, c := range cols {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("reference: row %d %s: %w", row, columns[i], err)
			}
			vals[i] = v * Millions
		}

		t := ElectionInterval * float64(row)
		if hasYear {
			year, err := strconv.ParseFloat(strings.TrimSpace(rec[yearCol]), 64)
			if err != nil {
				return nil, fmt.Errorf("reference: row %d year: %w", row, err)
			}
			t = year - BaseYear
		}

		s.Times = append(s.Times, t)
		s.Unaffiliated = append(s.Unaffiliated, vals[0])
		s.Dem = append(s.Dem, vals[1])
		s.Rep = append(s.Rep, vals[2])
	}

	if s.Len() == 0 {
		return nil, errors.New("reference: no data rows")
	}
	return s, nil
}

// Fit is the root-mean-square error of V1, B and C against the series, in persons.
type Fit struct {
	Unaffiliated float64
	Dem          float64
	Rep          float64
	Overall      float64
	Points       int
}

// Compare interpolates the trajectory linearly at each series time inside its
// span and reports the RMSE. B is matched to Dem and C to Rep.
func Compare(s *Series, result *dynamo.Result) (*Fit, error) {
	if result == nil || len(result.Times) < 2 {
		return nil, fmt.Errorf("%w: trajectory too short", ErrNoOverlap)
	}

	predictors := make([]interp.PiecewiseLinear, 3)
	for i, c := range []int{models.V1, models.B, models.C} {
		if err := predictors[i].Fit(result.Times, result.Column(c)); err != nil {
			return nil, fmt.Errorf("reference: interpolate: %w", err)
		}
	}

	t0, t1 := result.Times[0], result.Times[len(result.Times)-1]
	observed := [3][]float64{s.Unaffiliated, s.Dem, s.Rep}

	var sq [3]float64
	n := 0
	for k, t := range s.Times {
		if t < t0 || t > t1 {
			continue
		}
		for i := range predictors {
			d := predictors[i].Predict(t) - observed[i][k]
			sq[i] += d * d
		}
		n++
	}
	if n == 0 {
		return nil, ErrNoOverlap
	}

	fit := &Fit{Points: n}
	fit.Unaffiliated = math.Sqrt(sq[0] / float64(n))
	fit.Dem = math.Sqrt(sq[1] / float64(n))
	fit.Rep = math.Sqrt(sq[2] / float64(n))
	fit.Overall = math.Sqrt((sq[0] + sq[1] + sq[2]) / float64(3*n))
	return fit, nil
}
