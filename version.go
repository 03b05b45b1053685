// Copyright ©2024 The VisionCore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visioncore

import (
	"runtime/debug"
)

const modulePath = "github.com/LynnColeArt/visioncore"

// Version returns the module version recorded in the running binary, or
// "(devel)" when it was built without module information.
func Version() string {
	b, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return moduleVersion(b)
}

func moduleVersion(b *debug.BuildInfo) string {
	if b.Main.Path == modulePath && b.Main.Version != "" {
		return b.Main.Version
	}
	for _, m := range b.Deps {
		if m.Path != modulePath {
			continue
		}
		if m.Replace != nil {
			return m.Version + " => " + m.Replace.Path
		}
		return m.Version
	}
	return "(devel)"
}
