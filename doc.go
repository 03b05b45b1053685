// Copyright ©2024 The VisionCore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visioncore provides target-polymorphic buffers, views and
// pyramids for multi-resolution image processing, together with the
// dispatch primitives every kernel is written against.
//
// The same kernel runs on Host memory with a sequential loop or on Device
// memory with a barrier-synchronized fan-out over a worker pool. The target
// is a type parameter, so a kernel never branches on it.
//
// Example usage:
//
//	buf, err := visioncore.NewBuffer2D[float32, visioncore.Device](640, 480)
//	if err != nil {
//		return err
//	}
//	defer buf.Destroy()
//
//	img := buf.View()
//	visioncore.LaunchParallelFor2D[visioncore.Device](img.Width(), img.Height(), func(x, y int) {
//		img.Set(x, y, 1)
//	})
//
// Kernels built on these primitives live in package imgutils.
package visioncore
