package harness

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/net/bpf"
	"golang.org/x/sys/unix"
)

const (
	seccompSetModeFilter   = 1
	seccompFilterFlagTsync = 1
	seccompRetKillProcess  = 0x80000000
	seccompRetAllow        = 0x7fff0000
	auditArchX86_64        = 0xc000003e
	seccompDataNrOffset    = 0
	seccompDataArchOffset  = 4
)

// allowedSyscalls are the calls a program makes after entering the sandbox,
// byte I/O on the standard streams plus what the Go runtime needs to schedule and exit.
var allowedSyscalls = []uint32{
	unix.SYS_READ,
	unix.SYS_WRITE,
	unix.SYS_EXIT,
	unix.SYS_EXIT_GROUP,
	unix.SYS_FUTEX,
	unix.SYS_SCHED_YIELD,
	unix.SYS_NANOSLEEP,
	unix.SYS_CLOCK_NANOSLEEP,
	unix.SYS_CLOCK_GETTIME,
	unix.SYS_MMAP,
	unix.SYS_MUNMAP,
	unix.SYS_MADVISE,
	unix.SYS_MPROTECT,
	unix.SYS_RT_SIGRETURN,
	unix.SYS_RT_SIGPROCMASK,
	unix.SYS_RT_SIGACTION,
	unix.SYS_SIGALTSTACK,
	unix.SYS_TGKILL,
	unix.SYS_GETPID,
	unix.SYS_GETTID,
	unix.SYS_CLONE,
	unix.SYS_EPOLL_PWAIT,
}

// Sandboxed reads fd 0 and writes fd 1 directly, under a seccomp allow-list.
type Sandboxed struct {
	buf [1]byte
}

var _ Driver = new(Sandboxed)

func NewSandboxed() *Sandboxed {
	return new(Sandboxed)
}

// Enter closes stderr, forbids privilege gain and installs the filter on every thread.
func (s *Sandboxed) Enter() error {
	if err := os.Stderr.Close(); err != nil {
		return err
	}
	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return fmt.Errorf("set no new privs: %w", err)
	}

	raw, err := bpf.Assemble(filter())
	if err != nil {
		return err
	}
	insts := make([]unix.SockFilter, len(raw))
	for i, inst := range raw {
		insts[i] = unix.SockFilter{
			Code: inst.Op,
			Jt:   inst.Jt,
			Jf:   inst.Jf,
			K:    inst.K,
		}
	}
	prog := unix.SockFprog{
		Len:    uint16(len(insts)),
		Filter: &insts[0],
	}
	if _, _, errno := unix.Syscall(
		unix.SYS_SECCOMP,
		seccompSetModeFilter,
		seccompFilterFlagTsync,
		uintptr(unsafe.Pointer(&prog)),
	); errno != 0 {
		return fmt.Errorf("install seccomp filter: %w", errno)
	}
	return nil
}

func filter() []bpf.Instruction {
	insts := []bpf.Instruction{
		bpf.LoadAbsolute{Off: seccompDataArchOffset, Size: 4},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: auditArchX86_64, SkipTrue: 1},
		bpf.RetConstant{Val: seccompRetKillProcess},
		bpf.LoadAbsolute{Off: seccompDataNrOffset, Size: 4},
	}
	n := len(allowedSyscalls)
	for i, nr := range allowedSyscalls {
		insts = append(insts, bpf.JumpIf{
			Cond:     bpf.JumpEqual,
			Val:      nr,
			SkipTrue: uint8(n - i),
		})
	}
	return append(insts,
		bpf.RetConstant{Val: seccompRetKillProcess},
		bpf.RetConstant{Val: seccompRetAllow},
	)
}

func (s *Sandboxed) Read(b *byte) error {
	for {
		n, err := unix.Read(0, s.buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInput, err)
		}
		if n != 1 {
			return fmt.Errorf("%w: %w", ErrInput, io.EOF)
		}
		*b = s.buf[0]
		return nil
	}
}

func (s *Sandboxed) Write(b byte) error {
	s.buf[0] = b
	for {
		n, err := unix.Write(1, s.buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
		if n != 1 {
			return fmt.Errorf("%w: short write", ErrOutput)
		}
		return nil
	}
}
