//go:build !debug

package main

import "github.com/oukeidos/tlviz/internal/runner"

func wrapLauncher(l runner.Launcher) runner.Launcher { return l }
