// Package sampler draws reproducible line samples from large text extracts.
package sampler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/spf13/afero"

	"parcels/internal/logger"
)

const (
	// Seed fixes the generator so repeated runs pick the same lines.
	Seed uint64 = 12345
	// DefaultFraction is the share of lines kept when none is given.
	DefaultFraction = 0.1
)

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// SampleFile copies the first line of in plus floor(fraction*N) further
// lines, chosen at random from lines 1..N-1 (0-based), to out. Lines keep
// their original order and bytes. out is created or truncated.
func SampleFile(fs afero.Fs, in, out string, fraction float64) error {
	total, err := countLines(fs, in)
	if err != nil {
		return err
	}
	k := int(fraction * float64(total))

	indices := []int{}
	if total > 1 {
		indices, err = SampleIndices(NewRand(Seed), 1, total, k)
		if err != nil {
			return fmt.Errorf("sample %s: %w", in, err)
		}
	}
	sort.Ints(indices)
	indices = append([]int{0}, indices...)

	logger.Default().Debug("sampling lines", "input", in, "lines", total, "selected", len(indices))
	return copyLines(fs, in, out, indices)
}

// SampleIndices draws k distinct integers uniformly from [lo, hi) using
// Floyd's algorithm. The result is in draw order.
func SampleIndices(r *rand.Rand, lo, hi, k int) ([]int, error) {
	n := hi - lo
	if k < 0 || k > n {
		return nil, fmt.Errorf("cannot draw %d distinct values from a range of %d", k, max(n, 0))
	}
	seen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := r.IntN(j + 1)
		if _, dup := seen[t]; dup {
			t = j
		}
		seen[t] = struct{}{}
		out = append(out, lo+t)
	}
	return out, nil
}

func countLines(fs afero.Fs, path string) (int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	count := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			count++
		}
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

// copyLines writes the lines at the ascending 0-based indices of in to out.
func copyLines(fs afero.Fs, in, out string, indices []int) (err error) {
	src, err := fs.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer src.Close()

	dst, err := fs.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", out, cerr)
		}
	}()

	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	next := 0
	for lineNo := 0; next < len(indices); lineNo++ {
		line, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return fmt.Errorf("read %s: %w", in, rerr)
		}
		if lineNo == indices[next] {
			if _, err := bw.WriteString(line); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			next++
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
