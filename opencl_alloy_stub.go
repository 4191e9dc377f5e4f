//go:build !opencl

package main

import (
	"context"
	"errors"

	"alloyheat/internal/relax"
)

var errOpenCLDisabled = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

type openCLAlloySolver struct{}

func newOpenCLAlloySolver(height, width int) (*openCLAlloySolver, error) {
	return nil, errOpenCLDisabled
}

func (s *openCLAlloySolver) Relax(context.Context, relax.Source, relax.Destination) error {
	return errOpenCLDisabled
}

func (s *openCLAlloySolver) Close() {}

func (s *openCLAlloySolver) DeviceName() string { return "" }
