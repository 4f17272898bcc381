// Copyright 2026 VulkanSceneGraph Authors. All rights reserved.

// Command xferdemo drives a transfer.Task against a fake in-memory
// driver.GPU for a handful of synthetic frames, printing what would
// be submitted to a real queue. It has no rendering of its own: its
// only purpose is to give the transfer engine an executable entry
// point distinct from its tests.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suchaoyong/VulkanSceneGraph/driver"
	"github.com/suchaoyong/VulkanSceneGraph/internal/ctxt"
	"github.com/suchaoyong/VulkanSceneGraph/internal/log"
	"github.com/suchaoyong/VulkanSceneGraph/transfer"
)

func init() { driver.Register(memDriver{}) }

func main() {
	frames := flag.Int("frames", 3, "number of synthetic frames to drive")
	bufSize := flag.Int("size", 256, "size in bytes of the fake buffer written each frame")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.SetLevel(*level)

	if err := ctxt.LoadDriver("mem"); err != nil {
		fmt.Fprintln(os.Stderr, "xferdemo:", err)
		os.Exit(1)
	}

	gpu := ctxt.GPU()
	queue := &memQueue{}
	cfg := transfer.DefaultConfig()
	cfg.FrameCount = 2

	task := transfer.NewTask(cfg, gpu, queue, nil, 0)
	defer task.Close()

	dst, err := gpu.NewBuffer(int64(*bufSize), true, driver.UGeneric)
	if err != nil {
		fmt.Fprintln(os.Stderr, "xferdemo: NewBuffer:", err)
		os.Exit(1)
	}

	for i := 0; i < *frames; i++ {
		task.Advance()

		data := transfer.NewData(make([]byte, *bufSize), transfer.Dynamic)
		for j := range data.Bytes() {
			data.Bytes()[j] = byte(i*31 + j)
		}

		bi := &transfer.BufferInfo{Data: data, Dst: dst}
		if err := task.Assign([]*transfer.BufferInfo{bi}, nil); err != nil {
			fmt.Fprintln(os.Stderr, "xferdemo: Assign:", err)
			os.Exit(1)
		}

		cb, transferred, err := task.TransferData()
		if err != nil {
			fmt.Fprintln(os.Stderr, "xferdemo: TransferData:", err)
			os.Exit(1)
		}
		if !transferred {
			fmt.Printf("frame %d: nothing to transfer\n", i)
			data.Unref()
			continue
		}

		info := &driver.SubmitInfo{
			CmdBuffer: []driver.CmdBuffer{cb},
			Wait:      task.WaitSemaphores(),
			Signal:    task.SignalSemaphores(),
		}
		if err := queue.Submit(info); err != nil {
			fmt.Fprintln(os.Stderr, "xferdemo: Submit:", err)
			os.Exit(1)
		}
		fmt.Printf("frame %d: submitted %d byte(s) to buffer, %d wait + %d signal semaphore(s)\n",
			i, *bufSize, len(info.Wait), len(info.Signal))
		data.Unref()
	}
}
