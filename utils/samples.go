// SPDX-License-Identifier: EPL-2.0

// Package utils holds scalar sample conversions shared by the packet and
// format packages.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to the full int16 range.
// Negative values scale by 32768 and positive by 32767 so both ends are
// reachable.
func Float32ToInt16(x float32) int16 {
	if x >= 1 {
		return 32767
	}
	if x <= -1 {
		return -32768
	}
	if x < 0 {
		return int16(x * 32768.0)
	}
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps an int16 sample into [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}
