//go:build !linux && !darwin

package credentials

func lockMemory([]byte)   {}
func unlockMemory([]byte) {}
func disableCoreDumps()   {}
