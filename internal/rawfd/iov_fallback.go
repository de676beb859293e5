//go:build darwin || freebsd || netbsd || openbsd || dragonfly || solaris

// File: internal/rawfd/iov_fallback.go
// Author: momentics <momentics@gmail.com>
//
// Vectored I/O fallback for unix platforms where x/sys does not expose
// readv/writev. Buffers are transferred sequentially; a would-block
// mid-sequence surfaces as a short transfer, which the pipe contract
// already requires callers to handle.

package rawfd

// Readv reads into the buffers in order. It stops at the first short
// read, error, or end-of-stream.
func (fd *FD) Readv(bufs [][]byte) (int, error) {
	var total int
	for _, buf := range bufs {
		if len(buf) == 0 {
			continue
		}
		n, err := fd.Read(buf)
		total += n
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(buf) {
			break
		}
	}
	return total, nil
}

// Writev writes the buffers in order. It stops at the first short
// write or error.
func (fd *FD) Writev(bufs [][]byte) (int, error) {
	var total int
	for _, buf := range bufs {
		if len(buf) == 0 {
			continue
		}
		n, err := fd.Write(buf)
		total += n
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(buf) {
			break
		}
	}
	return total, nil
}
