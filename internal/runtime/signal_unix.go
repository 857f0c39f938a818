// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo

package runtime

/*
#include <setjmp.h>
#include <signal.h>
#include <stdint.h>
#include <string.h>
#include <sys/time.h>

typedef void (*bf_entry_t)(void);

static sigjmp_buf bf_env;
static uintptr_t bf_tape_base, bf_tape_end;
static uintptr_t bf_user_start, bf_user_end;

// Status codes mirror runtime.Status in envelope.go; kept in lockstep
// by hand since cgo cannot share a Go-side enum definition with the
// preamble.
enum {
    bf_ok             = 0,
    bf_tape_exceeded   = 8,
    bf_tape_underflow  = 9,
    bf_time_exceeded   = 10,
    bf_no_memory       = 6,
};

static void bf_segv_handler(int sig, siginfo_t *info, void *ctx) {
    (void) sig; (void) ctx;

    uintptr_t fault = (uintptr_t) info->si_addr;
    if (fault < bf_tape_base || fault >= bf_tape_end) {
        // Not ours: restore default behavior and let it crash normally.
        signal(SIGSEGV, SIG_DFL);
        return;
    }

    if (fault < bf_user_start) {
        siglongjmp(bf_env, bf_tape_underflow);
    } else if (fault >= bf_user_end) {
        siglongjmp(bf_env, bf_tape_exceeded);
    } else {
        siglongjmp(bf_env, bf_no_memory);
    }
}

static void bf_timer_handler(int sig, siginfo_t *info, void *ctx) {
    (void) sig; (void) info; (void) ctx;
    siglongjmp(bf_env, bf_time_exceeded);
}

// bf_run installs the fault and timeout handlers, calls entry on the
// current thread, and returns a status code: 0 on a normal return, or
// whichever status the handler longjmp'd with. timeout_usec <= 0 means
// no deadline. The handlers are removed again before returning, whether
// entry finished normally or faulted.
static int bf_run(bf_entry_t entry, uintptr_t tape_base, uintptr_t tape_end,
        uintptr_t user_start, uintptr_t user_end, long long timeout_usec) {
    bf_tape_base  = tape_base;
    bf_tape_end   = tape_end;
    bf_user_start = user_start;
    bf_user_end   = user_end;

    struct sigaction act_segv, act_vtalarm, old_segv, old_vtalarm;
    memset(&act_segv, 0, sizeof(act_segv));
    act_segv.sa_sigaction = bf_segv_handler;
    act_segv.sa_flags = SA_SIGINFO;
    if (sigaction(SIGSEGV, &act_segv, &old_segv) != 0) {
        return -1;
    }

    int armed_timer = 0;
    if (timeout_usec > 0) {
        memset(&act_vtalarm, 0, sizeof(act_vtalarm));
        act_vtalarm.sa_sigaction = bf_timer_handler;
        act_vtalarm.sa_flags = SA_SIGINFO;
        if (sigaction(SIGVTALRM, &act_vtalarm, &old_vtalarm) != 0) {
            sigaction(SIGSEGV, &old_segv, NULL);
            return -1;
        }
        armed_timer = 1;

        struct itimerval timer;
        memset(&timer, 0, sizeof(timer));
        timer.it_value.tv_sec  = timeout_usec / 1000000;
        timer.it_value.tv_usec = timeout_usec % 1000000;
        setitimer(ITIMER_VIRTUAL, &timer, NULL);
    }

    int ret = sigsetjmp(bf_env, 1);
    if (ret == 0) {
        entry();
        ret = bf_ok;
    }

    if (armed_timer) {
        struct itimerval off;
        memset(&off, 0, sizeof(off));
        setitimer(ITIMER_VIRTUAL, &off, NULL);
        sigaction(SIGVTALRM, &old_vtalarm, NULL);
    }
    sigaction(SIGSEGV, &old_segv, NULL);

    return ret;
}
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Invoke runs the code at entry with the SIGSEGV/SIGVTALRM safety net
// armed: a fault inside [tapeBase, tapeEnd) is translated into the
// matching Status instead of crashing the process, and the run is cut
// short with StatusTimeExceeded if it is still going after timeout.
// A zero timeout means no deadline.
//
// Invoke pins the calling goroutine to its OS thread for its duration:
// the signal handlers above are process-wide and key off a single
// global fault window, so the thread that arms them must be the thread
// that runs entry, and must not be reused for anything else by the Go
// scheduler while armed.
func Invoke(entry uintptr, tapeBase, tapeEnd, userStart, userEnd uintptr, timeout int64) Status {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ret := C.bf_run(
		C.bf_entry_t(unsafe.Pointer(entry)),
		C.uintptr_t(tapeBase), C.uintptr_t(tapeEnd),
		C.uintptr_t(userStart), C.uintptr_t(userEnd),
		C.longlong(timeout),
	)

	if ret < 0 {
		return StatusHandlerError
	}
	return Status(ret)
}
