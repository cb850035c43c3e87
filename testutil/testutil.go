package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/parkmeans/distance"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// UniformPoints generates m points of dimension n with coordinates in
// [0, 1), flat and point-major.
func (r *RNG) UniformPoints(m, n int) []float64 {
	data := make([]float64, m*n)
	r.FillUniform(data)
	return data
}

// GaussianBlobs generates m points of dimension n drawn around k centers.
// Centers are placed 10 units apart along axis 0, so blobs with spread
// well below 5 do not overlap. Point i belongs to blob i%k.
//
// Returns the flat points, the blob label of every point and the flat centers.
func (r *RNG) GaussianBlobs(m, n, k int, spread float64) (data []float64, labels []int, centers []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers = make([]float64, k*n)
	for c := 0; c < k; c++ {
		for d := 0; d < n; d++ {
			// Blob c sits at 10*c on axis 0 and jitters on the others.
			if d == 0 {
				centers[c*n+d] = 10 * float64(c)
			} else {
				centers[c*n+d] = r.rand.Float64()
			}
		}
	}

	data = make([]float64, m*n)
	labels = make([]int, m)
	for i := 0; i < m; i++ {
		c := i % k
		labels[i] = c
		for d := 0; d < n; d++ {
			data[i*n+d] = centers[c*n+d] + r.rand.NormFloat64()*spread
		}
	}

	return data, labels, centers
}

// SeedCentroids picks k distinct points of data as initial centroids
// (Forgy initialization) and returns them as a new flat buffer.
func (r *RNG) SeedCentroids(data []float64, m, n, k int) []float64 {
	r.mu.Lock()
	perm := r.rand.Perm(m)
	r.mu.Unlock()

	centroids := make([]float64, k*n)
	for c := 0; c < k; c++ {
		copy(centroids[c*n:(c+1)*n], data[perm[c]*n:(perm[c]+1)*n])
	}
	return centroids
}

// ReferenceKMeans is a single-threaded Lloyd's k-means written without any
// of the library's internals, used as ground truth.
//
// centroids is updated in place. Returns the assignments and the number of
// iterations run.
func ReferenceKMeans(data, centroids []float64, m, n, k int, epsilon float64) ([]int, int) {
	assignments := make([]int, m)
	prev := make([]float64, k)
	curr := make([]float64, k)

	dist := func(a, b []float64) float64 {
		var sum float64
		for i := range a {
			sum += (a[i] - b[i]) * (a[i] - b[i])
		}
		return math.Sqrt(sum)
	}

	iterations := 0
	for {
		copy(prev, curr)

		for i := 0; i < m; i++ {
			best, bestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				if d := dist(data[i*n:(i+1)*n], centroids[c*n:(c+1)*n]); d < bestDist {
					best, bestDist = c, d
				}
			}
			assignments[i] = best
		}

		counts := make([]int, k)
		for i := range centroids {
			centroids[i] = 0
		}
		for i, c := range assignments {
			for d := 0; d < n; d++ {
				centroids[c*n+d] += data[i*n+d]
			}
			counts[c]++
		}
		for c := 0; c < k; c++ {
			for d := 0; d < n; d++ {
				centroids[c*n+d] /= float64(max(counts[c], 1))
			}
		}

		for c := range curr {
			curr[c] = 0
		}
		for i, c := range assignments {
			curr[c] += dist(data[i*n:(i+1)*n], centroids[c*n:(c+1)*n])
		}
		iterations++

		done := true
		for c := range curr {
			if math.Abs(prev[c]-curr[c]) > epsilon {
				done = false
				break
			}
		}
		if done {
			return assignments, iterations
		}
	}
}

// SSE returns the sum of squared distances between every point and its
// assigned centroid.
func SSE(data, centroids []float64, assignments []int, n int) float64 {
	var sum float64
	for i, c := range assignments {
		sum += distance.SquaredEuclidean(data[i*n:(i+1)*n], centroids[c*n:(c+1)*n])
	}
	return sum
}
