package mdgp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ParseInstance reads a benchmark instance in the standard MDGP format:
//
//	N K type LB_0 UB_0 ... LB_{K-1} UB_{K-1}
//	i j d
//	i j d
//	...
//
// where type is "ds" (different sizes) or "ss" (same sizes), followed
// by K lower/upper bound pairs and then an edge list of dissimilarity
// triples. Unlisted pairs default to zero; self-pairs are ignored.
func ParseInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
	nextInt := func(what string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		return v, nil
	}

	n, err := nextInt("element count")
	if err != nil {
		return nil, err
	}
	k, err := nextInt("group count")
	if err != nil {
		return nil, err
	}

	typ, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading group type: %w", err)
	}
	if typ != "ds" && typ != "ss" {
		return nil, fmt.Errorf("unsupported group type %q", typ)
	}

	lb := make([]int, k)
	ub := make([]int, k)
	for g := 0; g < k; g++ {
		if lb[g], err = nextInt(fmt.Sprintf("LB[%d]", g)); err != nil {
			return nil, err
		}
		if ub[g], err = nextInt(fmt.Sprintf("UB[%d]", g)); err != nil {
			return nil, err
		}
	}

	inst, err := NewInstance(n, k, lb, ub)
	if err != nil {
		return nil, err
	}

	// Edge list until EOF. Triples arrive as (i, j, d).
	for {
		tok, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading edge list: %w", err)
		}
		i, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("reading edge source: %w", err)
		}
		j, err := nextInt("edge target")
		if err != nil {
			return nil, err
		}
		dTok, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading edge weight: %w", err)
		}
		d, err := strconv.ParseFloat(dTok, 64)
		if err != nil {
			return nil, fmt.Errorf("reading edge weight: %w", err)
		}
		if i < 0 || j < 0 || i >= n || j >= n {
			return nil, fmt.Errorf("edge (%d,%d) out of range [0,%d)", i, j, n)
		}
		inst.SetDissim(i, j, d)
	}

	return inst, nil
}

// LoadInstance parses an instance file from disk.
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance: %w", err)
	}
	defer f.Close()

	inst, err := ParseInstance(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return inst, nil
}
