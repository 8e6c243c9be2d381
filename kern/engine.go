/*
 * engine.go, part of goQML.
 *
 * Copyright 2024 The goQML authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package kern

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	qml "github.com/goqml/goqml"
	"github.com/goqml/goqml/rep"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Type names a kernel function.
type Type int

const (
	Gaussian Type = iota + 1
	Laplacian
	Linear
)

func (t Type) String() string {
	switch t {
	case Gaussian:
		return "gaussian"
	case Laplacian:
		return "laplacian"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("kernel(%d)", int(t))
}

// ParseType returns the Type named by s, or ErrConfiguration.
func ParseType(s string) (Type, error) {
	switch s {
	case "gaussian":
		return Gaussian, nil
	case "laplacian":
		return Laplacian, nil
	case "linear":
		return Linear, nil
	}
	return 0, qml.NewError(qml.ErrConfiguration, "ParseType",
		fmt.Sprintf("unknown kernel type %q", s))
}

// Config selects the kernel function and its bandwidth. Width must be
// strictly positive for the gaussian and laplacian kernels; the linear kernel
// has no bandwidth and ignores it.
type Config struct {
	Type  Type    `yaml:"kernel"`
	Width float64 `yaml:"width"`
}

func (c *Config) check(caller string) error {
	if c == nil {
		return qml.NewError(qml.ErrConfiguration, caller, "nil kernel configuration")
	}
	switch c.Type {
	case Gaussian, Laplacian:
		if c.Width <= 0 {
			return qml.NewError(qml.ErrConfiguration, caller,
				fmt.Sprintf("kernel width must be positive, got %g", c.Width))
		}
	case Linear:
		//no width
	default:
		return qml.NewError(qml.ErrConfiguration, caller,
			fmt.Sprintf("unknown kernel type %v", c.Type))
	}
	return nil
}

// ReadConfig decodes a Config from YAML, e.g.
//
//	kernel: gaussian
//	width: 20.0
func ReadConfig(r io.Reader) (*Config, error) {
	f := new(struct {
		Kernel string  `yaml:"kernel"`
		Width  float64 `yaml:"width"`
	})
	if err := yaml.NewDecoder(r).Decode(f); err != nil {
		return nil, qml.NewError(qml.ErrConfiguration, "ReadConfig", err.Error())
	}
	t, err := ParseType(f.Kernel)
	if err != nil {
		return nil, err
	}
	c := &Config{Type: t, Width: f.Width}
	if err := c.check("ReadConfig"); err != nil {
		return nil, err
	}
	return c, nil
}

// Options holds the compute settings of an Engine. Get one from
// DefaultOptions and change what you need through the accessors; each
// accessor returns the current value and, if given a valid argument, sets it.
type Options struct {
	cpus   int
	logger zerolog.Logger
}

// DefaultOptions returns an Options with as many goroutines as logical CPUs
// and no logging.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.logger = zerolog.Nop()
	return ret
}

// Cpus returns the number of goroutines the engine fans row blocks out to,
// and sets it, if a positive value is given. gonum's native BLAS runs each
// matrix product on the calling goroutine, so this value is also the total
// parallelism of a kernel computation; keep it at or below the core count.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// Logger returns the engine logger and sets it, if given. The engine only
// writes debug-level events (matrix dimensions and timings).
func (o *Options) Logger(logger ...zerolog.Logger) zerolog.Logger {
	ret := o.logger
	if len(logger) > 0 {
		o.logger = logger[0]
	}
	return ret
}

// Engine computes kernel matrices. It is stateless apart from its Options, so
// one Engine can be shared by concurrent callers.
type Engine struct {
	o *Options
}

// New returns an Engine with the given Options, or the defaults.
func New(options ...*Options) *Engine {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	return &Engine{o: o}
}

// Matrix computes the kernel matrix K between two molecular representation
// sets, K[i][j] = k(A[i], B[j]), with the kernel function and width taken
// from c. The result has shape (A.Len(), B.Len()) and is newly allocated on
// every call. If B is the same *rep.Set as A, only the upper triangle is
// computed; the lower triangle is filled by symmetry and the diagonal set to
// the exact self-similarity, so K is exactly symmetric.
// It returns ErrShapeMismatch if the sets were built with different schemes
// or dimensions, and ErrConfiguration for a bad kernel configuration.
func (e *Engine) Matrix(A, B *rep.Set, c *Config) (*mat.Dense, error) {
	if err := c.check("Matrix"); err != nil {
		return nil, err
	}
	if A == nil || B == nil || A.Len() == 0 || B.Len() == 0 {
		return nil, qml.NewError(qml.ErrEmptyInput, "Matrix", "empty representation set")
	}
	if A.Scheme() != B.Scheme() || A.Dim() != B.Dim() {
		return nil, qml.NewError(qml.ErrShapeMismatch, "Matrix",
			fmt.Sprintf("sets are not comparable: %v/%d vs %v/%d",
				A.Scheme(), A.Dim(), B.Scheme(), B.Dim()))
	}
	start := time.Now()
	self := A == B
	var K *mat.Dense
	switch c.Type {
	case Gaussian:
		K = e.gaussian(A.Data(), B.Data(), c.Width, self)
	case Laplacian:
		K = e.laplacian(A.Data(), B.Data(), c.Width, self)
	case Linear:
		K = e.linear(A.Data(), B.Data(), self)
	}
	e.o.logger.Debug().
		Str("kernel", c.Type.String()).
		Int("rows", A.Len()).
		Int("cols", B.Len()).
		Bool("self", self).
		Dur("elapsed", time.Since(start)).
		Msg("kernel matrix computed")
	return K, nil
}

// Self computes the self-kernel of A. It is shorthand for Matrix(A, A, c).
func (e *Engine) Self(A *rep.Set, c *Config) (*mat.Dense, error) {
	return e.Matrix(A, A, c)
}

// rows runs f over the row ranges [0,na) split across the engine's
// goroutines. Each worker owns a contiguous block, so no two of them touch
// the same output row.
func (e *Engine) rows(na int, f func(lo, hi int)) {
	cpus := e.o.cpus
	if cpus > na {
		cpus = na
	}
	if cpus < 1 {
		cpus = 1
	}
	var wg sync.WaitGroup
	chunk := (na + cpus - 1) / cpus
	for lo := 0; lo < na; lo += chunk {
		hi := lo + chunk
		if hi > na {
			hi = na
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
