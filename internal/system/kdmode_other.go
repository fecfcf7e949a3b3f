//go:build !linux

package system

import "errors"

const (
	kdText     = 0x00
	kdGraphics = 0x01
)

func setKDMode(paths []string, mode int) error {
	return errors.New("console modes are only supported on linux")
}
