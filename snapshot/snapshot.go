package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hupe1980/parkmeans"
	"github.com/hupe1980/parkmeans/internal/conv"
	"github.com/hupe1980/parkmeans/resource"
)

// Model is the persisted form of a clustering run.
type Model struct {
	// Dimension is the number of coordinates per centroid.
	Dimension int
	// Centroids is the flat K*Dimension centroid buffer.
	Centroids []float64
	// Assignments maps every point to its cluster.
	Assignments []int
	// Costs holds the per-cluster cost.
	Costs []float64
	// Counts holds the per-cluster population.
	Counts []int
	// Iterations is the number of iterations the run completed.
	Iterations int
	// Converged reports whether the run converged.
	Converged bool
}

// FromResult captures a finished run.
func FromResult(r *parkmeans.Result) *Model {
	return &Model{
		Dimension:   r.Dimension(),
		Centroids:   r.Centroids(),
		Assignments: r.Assignments(),
		Costs:       append([]float64(nil), r.Costs...),
		Counts:      append([]int(nil), r.Counts...),
		Iterations:  r.Iterations,
		Converged:   r.Converged(),
	}
}

// K returns the number of clusters.
func (m *Model) K() int {
	if m.Dimension <= 0 {
		return 0
	}
	return len(m.Centroids) / m.Dimension
}

// Centroid returns a view of centroid k.
func (m *Model) Centroid(k int) []float64 {
	return m.Centroids[k*m.Dimension : (k+1)*m.Dimension]
}

// Validate checks that the buffers are consistent with each other.
func (m *Model) Validate() error {
	if m.Dimension <= 0 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidModel, m.Dimension)
	}
	if len(m.Centroids) == 0 || len(m.Centroids)%m.Dimension != 0 {
		return fmt.Errorf("%w: %d centroid values for dimension %d", ErrInvalidModel, len(m.Centroids), m.Dimension)
	}
	k := m.K()
	if len(m.Costs) != k || len(m.Counts) != k {
		return fmt.Errorf("%w: %d clusters but %d costs and %d counts", ErrInvalidModel, k, len(m.Costs), len(m.Counts))
	}
	if m.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidModel, m.Iterations)
	}
	for i, a := range m.Assignments {
		if a < 0 || a >= k {
			return fmt.Errorf("%w: point %d assigned to cluster %d of %d", ErrInvalidModel, i, a, k)
		}
	}
	for c, n := range m.Counts {
		if n < 0 {
			return fmt.Errorf("%w: cluster %d has count %d", ErrInvalidModel, c, n)
		}
	}
	return nil
}

// Options configures Save and Load.
type Options struct {
	Compression Compression
	Controller  *resource.Controller
}

// Option configures Save and Load.
type Option func(o *Options)

// WithCompression selects the body codec used by Save. Load ignores it.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithResourceController throttles IO through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *Options) {
		o.Controller = rc
	}
}

func applyOptions(optFns []Option) Options {
	var o Options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Save writes m to w.
func Save(ctx context.Context, w io.Writer, m *Model, optFns ...Option) error {
	o := applyOptions(optFns)

	if err := m.Validate(); err != nil {
		return err
	}

	raw := encodeBody(m)

	stored, comp, err := compress(raw, o.Compression)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	hdr, err := newHeader(m, comp, len(stored), len(raw))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(stored) + 4)

	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	buf.Write(stored)

	sum := crc32.ChecksumIEEE(buf.Bytes())
	if err := binary.Write(&buf, binary.LittleEndian, sum); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = buf.WriteTo(o.Controller.ThrottleWriter(ctx, w))
	return err
}

// Load reads a model written by Save from r.
func Load(ctx context.Context, r io.Reader, optFns ...Option) (*Model, error) {
	o := applyOptions(optFns)
	rr := o.Controller.ThrottleReader(ctx, r)

	hdrBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(rr, hdrBytes); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}

	var hdr Header
	if err := binary.Read(bytes.NewReader(hdrBytes), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	if hdr.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if hdr.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, hdr.Version)
	}

	stored, err := io.ReadAll(io.LimitReader(rr, int64(hdr.StoredSize)))
	if err != nil {
		return nil, err
	}
	if len(stored) != int(hdr.StoredSize) {
		return nil, fmt.Errorf("%w: body truncated at %d of %d bytes", ErrCorrupt, len(stored), hdr.StoredSize)
	}

	var want uint32
	if err := binary.Read(rr, binary.LittleEndian, &want); err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrCorrupt, err)
	}

	h := crc32.NewIEEE()
	_, _ = h.Write(hdrBytes)
	_, _ = h.Write(stored)
	if h.Sum32() != want {
		return nil, ErrChecksum
	}

	rawSize, err := bodySize(hdr)
	if err != nil {
		return nil, err
	}

	raw, err := decompress(stored, Compression(hdr.Compression), rawSize)
	if err != nil {
		return nil, err
	}

	return decodeBody(hdr, raw)
}

// SaveFile writes m to path. The file is written under a temporary name in
// the same directory and renamed into place.
func SaveFile(ctx context.Context, path string, m *Model, optFns ...Option) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = Save(ctx, f, m, optFns...); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// LoadFile reads a model from path.
func LoadFile(ctx context.Context, path string, optFns ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(ctx, f, optFns...)
}

func newHeader(m *Model, comp Compression, storedSize, rawSize int) (Header, error) {
	if uint64(rawSize) > MaxBodySize {
		return Header{}, fmt.Errorf("%w: %d body bytes exceed the %d byte limit", ErrInvalidModel, rawSize, uint64(MaxBodySize))
	}

	hdr := Header{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(comp),
	}
	if m.Converged {
		hdr.Flags |= flagConverged
	}

	var err error
	if hdr.Clusters, err = conv.IntToUint32(m.K()); err != nil {
		return hdr, err
	}
	if hdr.Dimension, err = conv.IntToUint32(m.Dimension); err != nil {
		return hdr, err
	}
	if hdr.Points, err = conv.IntToUint64(len(m.Assignments)); err != nil {
		return hdr, err
	}
	if hdr.Iterations, err = conv.IntToUint32(m.Iterations); err != nil {
		return hdr, err
	}
	if hdr.StoredSize, err = conv.IntToUint32(storedSize); err != nil {
		return hdr, err
	}
	if hdr.RawSize, err = conv.IntToUint64(rawSize); err != nil {
		return hdr, err
	}
	return hdr, nil
}

// bodySize returns the decoded body length implied by the header counts,
// and checks it against RawSize.
func bodySize(hdr Header) (int, error) {
	if err := checkRawSize(hdr); err != nil {
		return 0, err
	}

	k := int(hdr.Clusters)
	n := int(hdr.Dimension)

	points, err := conv.Uint64ToInt(hdr.Points)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	kn, err := conv.MulInt(k, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	// centroids + costs + counts are 8 bytes each, assignments 4.
	perCluster, err := conv.MulInt(kn+2*k, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	perPoint, err := conv.MulInt(points, 4)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if perCluster > math.MaxInt-perPoint {
		return 0, fmt.Errorf("%w: body size overflows", ErrCorrupt)
	}

	size := perCluster + perPoint
	if uint64(size) != hdr.RawSize {
		return 0, fmt.Errorf("%w: header announces %d body bytes, counts imply %d", ErrCorrupt, hdr.RawSize, size)
	}
	return size, nil
}

// checkRawSize rejects a decoded size the stored body cannot produce, before
// anything is allocated for it.
func checkRawSize(hdr Header) error {
	comp := Compression(hdr.Compression)

	ratio := maxExpansion(comp)
	if ratio == 0 {
		return fmt.Errorf("%w: unknown compression %d", ErrCorrupt, hdr.Compression)
	}

	limit := min(uint64(hdr.StoredSize)*ratio, MaxBodySize)
	if hdr.RawSize > limit {
		return fmt.Errorf("%w: %d body bytes cannot come from %d stored %s bytes", ErrCorrupt, hdr.RawSize, hdr.StoredSize, comp)
	}
	return nil
}

func encodeBody(m *Model) []byte {
	k := m.K()
	buf := make([]byte, 0, (len(m.Centroids)+2*k)*8+len(m.Assignments)*4)

	for _, v := range m.Centroids {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, v := range m.Costs {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, v := range m.Counts {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	// Validate bounds assignments to [0, K) and K fits uint32.
	for _, v := range m.Assignments {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func decodeBody(hdr Header, raw []byte) (*Model, error) {
	k := int(hdr.Clusters)
	n := int(hdr.Dimension)
	points := int(hdr.Points)

	m := &Model{
		Dimension:   n,
		Centroids:   make([]float64, k*n),
		Costs:       make([]float64, k),
		Counts:      make([]int, k),
		Assignments: make([]int, points),
		Iterations:  int(hdr.Iterations),
		Converged:   hdr.Flags&flagConverged != 0,
	}

	off := 0
	next64 := func() uint64 {
		v := binary.LittleEndian.Uint64(raw[off:])
		off += 8
		return v
	}

	for i := range m.Centroids {
		m.Centroids[i] = math.Float64frombits(next64())
	}
	for i := range m.Costs {
		m.Costs[i] = math.Float64frombits(next64())
	}
	for i := range m.Counts {
		c, err := conv.Uint64ToInt(next64())
		if err != nil {
			return nil, fmt.Errorf("%w: count of cluster %d: %w", ErrCorrupt, i, err)
		}
		m.Counts[i] = c
	}
	for i := range m.Assignments {
		m.Assignments[i] = int(binary.LittleEndian.Uint32(raw[off:]))
		off += 4
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return m, nil
}
