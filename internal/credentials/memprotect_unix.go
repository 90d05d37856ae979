//go:build linux || darwin

package credentials

import "syscall"

// lockMemory keeps the store key out of swap.
// Best-effort: failure is silently ignored (process may lack CAP_IPC_LOCK).
func lockMemory(b []byte) {
	_ = syscall.Mlock(b)
}

func unlockMemory(b []byte) {
	_ = syscall.Munlock(b)
}

// disableCoreDumps sets RLIMIT_CORE to 0 so decrypted credentials never land in a core file.
func disableCoreDumps() {
	_ = syscall.Setrlimit(syscall.RLIMIT_CORE, &syscall.Rlimit{Cur: 0, Max: 0})
}
