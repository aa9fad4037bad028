//go:build !unix

package sysexec

import "os/exec"

func detach(cmd *exec.Cmd) {}

func killGroupOnCancel(cmd *exec.Cmd) {}
