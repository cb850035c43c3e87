package resource

import (
	"context"
	"io"
)

// WaitIO blocks until the IO limit admits n more bytes and counts them.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil {
		return nil
	}

	if c.io != nil {
		// WaitN rejects requests above the burst.
		burst := c.io.Burst()
		for left := n; left > 0; left -= burst {
			if err := c.io.WaitN(ctx, min(left, burst)); err != nil {
				return err
			}
		}
	}

	if n > 0 {
		c.ioBytes.Add(int64(n))
	}
	return nil
}

// IOBytes returns the number of bytes admitted by WaitIO so far.
func (c *Controller) IOBytes() int64 {
	if c == nil {
		return 0
	}
	return c.ioBytes.Load()
}

// ThrottleWriter returns a writer that paces writes to w through c.
func (c *Controller) ThrottleWriter(ctx context.Context, w io.Writer) io.Writer {
	if c == nil {
		return w
	}
	return &throttledWriter{ctx: ctx, w: w, c: c}
}

// ThrottleReader returns a reader that paces reads from r through c.
// Bytes are charged after they are read.
func (c *Controller) ThrottleReader(ctx context.Context, r io.Reader) io.Reader {
	if c == nil {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, c: c}
}

type throttledWriter struct {
	ctx context.Context
	w   io.Writer
	c   *Controller
}

func (t *throttledWriter) Write(p []byte) (int, error) {
	if err := t.c.WaitIO(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.w.Write(p)
}

type throttledReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

func (t *throttledReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.c.WaitIO(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
