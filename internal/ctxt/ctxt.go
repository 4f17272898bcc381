// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Package ctxt provides the GPU driver used by the transfer engine.
// It is relocated from the renderer's own context accessor, and
// exports LoadDriver rather than selecting one from an init
// function: this package has no concrete backend of its own to
// blank-import, so the host application must load one explicitly
// before building a transfer.Task.
package ctxt

import (
	"errors"
	"strings"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
)

var (
	drv    driver.Driver
	gpu    driver.GPU
	limits driver.Limits
)

var errNoDriver = errors.New("ctxt: driver not found")

// LoadDriver attempts to load any registered driver whose name
// contains the given name string, case insensitive. If name is the
// empty string, every registered driver is considered.
// On success it replaces the values returned by Driver, GPU and
// Limits.
func LoadDriver(name string) error {
	drivers := driver.Drivers()
	err := errNoDriver
	name = strings.ToLower(name)
	for i := range drivers {
		if !strings.Contains(strings.ToLower(drivers[i].Name()), name) {
			continue
		}
		u, e := drivers[i].Open()
		if e != nil {
			err = e
			continue
		}
		drv = drivers[i]
		gpu = u
		limits = gpu.Limits()
		return nil
	}
	return err
}

// Driver returns the currently loaded driver.Driver.
func Driver() driver.Driver { return drv }

// GPU returns the currently loaded driver.GPU.
func GPU() driver.GPU { return gpu }

// Limits returns GPU().Limits(), queried once at load time.
// It must not be changed by the caller.
func Limits() *driver.Limits { return &limits }
