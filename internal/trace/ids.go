package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64    { return seqCounter.Add(1) }
func nextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID читает номер горутины из заголовка runtime.Stack
// ("goroutine 123 [running]:"): batch-воркеры пишут в один поток,
// и по GID их события можно развести.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	rest, ok := bytes.CutPrefix(buf[:n], []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, _ := bytes.Cut(rest, []byte{' '})
	gid, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}
