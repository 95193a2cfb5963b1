// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqdiff_test

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash/maphash"
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/deltacheck"
)

// configs are the option sets every test is run with.
var configs = []struct {
	name string
	opts []seqdiff.Option
}{
	{"default", nil},
	{"histogram-minimal", []seqdiff.Option{seqdiff.Histogram(), seqdiff.Minimal()}},
	{"myers", []seqdiff.Option{seqdiff.Myers()}},
	{"myers-minimal", []seqdiff.Option{seqdiff.Myers(), seqdiff.Minimal()}},
}

func chunk(pos int, elems ...string) seqdiff.Chunk[string] {
	return seqdiff.Chunk[string]{Position: pos, Elements: elems}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want []seqdiff.Delta[string]
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name: "identical",
			x:    []string{"A"},
			y:    []string{"A"},
			want: nil,
		},
		{
			name: "x-empty",
			y:    []string{"X", "Y"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(0), Target: chunk(0, "X", "Y")},
			},
		},
		{
			name: "y-empty",
			x:    []string{"A", "B", "C"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Delete, Source: chunk(0, "A", "B", "C"), Target: chunk(0)},
			},
		},
		{
			name: "single-change",
			x:    []string{"A"},
			y:    []string{"B"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(0, "A"), Target: chunk(0, "B")},
			},
		},
		{
			name: "basic-strings",
			x:    []string{"line1", "line2", "line3"},
			y:    []string{"line1", "new_line", "line3"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(1, "line2"), Target: chunk(1, "new_line")},
			},
		},
		{
			name: "insert-at-end",
			x:    []string{"A", "B"},
			y:    []string{"A", "B", "C"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(2), Target: chunk(2, "C")},
			},
		},
		{
			name: "delete-at-end",
			x:    []string{"A", "B", "C"},
			y:    []string{"A", "B"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Delete, Source: chunk(2, "C"), Target: chunk(2)},
			},
		},
		{
			name: "merged-change",
			x:    []string{"A", "B", "C", "D", "E"},
			y:    []string{"A", "X", "Y", "Z", "E"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(1, "B", "C", "D"), Target: chunk(1, "X", "Y", "Z")},
			},
		},
		{
			name: "discrete-changes",
			x:    []string{"A", "B", "C1", "C2", "C3", "C4", "C5", "D", "E"},
			y:    []string{"A", "X", "C1", "C2", "C3", "C4", "C5", "Y", "E"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(1, "B"), Target: chunk(1, "X")},
				{Type: seqdiff.Change, Source: chunk(7, "D"), Target: chunk(7, "Y")},
			},
		},
		{
			name: "repeated-elements",
			x:    []string{"A", "A", "A"},
			y:    []string{"A", "B", "A"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(1, "A"), Target: chunk(1, "B")},
			},
		},
		{
			name: "swap",
			x:    []string{"A", "B"},
			y:    []string{"B", "A"},
			want: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(0), Target: chunk(0, "B")},
				{Type: seqdiff.Delete, Source: chunk(1, "B"), Target: chunk(2)},
			},
		},
		{
			name: "equal-strings-different-memory",
			x:    []string{"string"},
			y:    []string{strings.Join([]string{"str", "ing"}, "")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range configs {
				got := seqdiff.Diff(tt.x, tt.y, c.opts...)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Diff(...) with %s differs [-want,+got]:\n%s", c.name, diff)
				}
				if err := deltacheck.Check(tt.x, tt.y, got, eq[string]); err != nil {
					t.Errorf("Diff(...) with %s returned invalid deltas: %v", c.name, err)
				}
			}
		})
	}
}

func eq[T comparable](a, b T) bool { return a == b }

func TestLargeDiff(t *testing.T) {
	var x []string
	for i := range 100 {
		x = append(x, strconv.Itoa(i))
	}
	y := slices.Clone(x)
	y[50] = "changed"
	y = slices.Insert(y, 20, "inserted")
	y = slices.Delete(y, 80, 81)

	for _, c := range configs {
		got := seqdiff.Diff(x, y, c.opts...)
		if len(got) != 3 {
			t.Errorf("Diff(...) with %s returned %d deltas, want 3", c.name, len(got))
		}
		if err := deltacheck.Check(x, y, got, eq[string]); err != nil {
			t.Errorf("Diff(...) with %s returned invalid deltas: %v", c.name, err)
		}
	}
}

var seed = maphash.MakeSeed()

// ciString is a case insensitive string.
type ciString struct{ s string }

func (a ciString) Equal(b ciString) bool { return strings.EqualFold(a.s, b.s) }
func (a ciString) Hash() uint64         { return maphash.String(seed, strings.ToLower(a.s)) }

// ciNoHash is a case insensitive string without a hash.
type ciNoHash struct{ s string }

func (a ciNoHash) Equal(b ciNoHash) bool { return strings.EqualFold(a.s, b.s) }

func TestDiffEqual(t *testing.T) {
	t.Run("hashed", func(t *testing.T) {
		x := []ciString{{"APPLE"}, {"BANANA"}}
		y := []ciString{{"apple"}, {"cherry"}}
		want := []seqdiff.Delta[ciString]{
			{
				Type:   seqdiff.Change,
				Source: seqdiff.Chunk[ciString]{Position: 1, Elements: []ciString{{"BANANA"}}},
				Target: seqdiff.Chunk[ciString]{Position: 1, Elements: []ciString{{"cherry"}}},
			},
		}
		got := seqdiff.DiffEqual(x, y)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DiffEqual(...) differs [-want,+got]:\n%s", diff)
		}
	})

	t.Run("unhashed", func(t *testing.T) {
		x := []ciNoHash{{"APPLE"}, {"BANANA"}}
		y := []ciNoHash{{"apple"}, {"cherry"}}
		got := seqdiff.DiffEqual(x, y)
		if len(got) != 1 || got[0].Source.Position != 1 || got[0].Target.Position != 1 {
			t.Errorf("DiffEqual(...) = %+v, want a single delta at 1, 1", got)
		}
	})
}

// token is only compared by name, the version distinguishes instances.
type token struct {
	name    string
	version int
}

func (a *token) Equal(b *token) bool { return a.name == b.name }
func (a *token) Hash() uint64        { return maphash.String(seed, a.name) }

func TestIdentityPreservation(t *testing.T) {
	a1, a2 := &token{"A", 1}, &token{"A", 2}
	b1, b2 := &token{"B", 1}, &token{"B", 2}
	c1 := &token{"C", 1}

	tests := []struct {
		name       string
		x, y       []*token
		wantDeltas int
	}{
		{"equivalent", []*token{a1}, []*token{a2}, 0},
		{"swap", []*token{a1, b1}, []*token{b2, a2}, 2},
		{"change", []*token{a1, b1}, []*token{a2, c1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seqdiff.DiffEqual(tt.x, tt.y)
			if len(got) != tt.wantDeltas {
				t.Fatalf("DiffEqual(...) returned %d deltas, want %d", len(got), tt.wantDeltas)
			}
			for _, d := range got {
				for _, e := range d.Source.Elements {
					if !slices.Contains(tt.x, e) {
						t.Errorf("source element %p (%+v) is not from x", e, *e)
					}
				}
				for _, e := range d.Target.Elements {
					if !slices.Contains(tt.y, e) {
						t.Errorf("target element %p (%+v) is not from y", e, *e)
					}
				}
			}
			if err := deltacheck.Check(tt.x, tt.y, got, (*token).Equal); err != nil {
				t.Errorf("DiffEqual(...) returned invalid deltas: %v", err)
			}
		})
	}
}

func TestDiffFunc(t *testing.T) {
	x := []map[string]int{{"id": 1}, {"id": 2}}
	y := []map[string]int{{"id": 1}, {"id": 3}}
	got := seqdiff.DiffFunc(x, y, maps.Equal[map[string]int, map[string]int])
	if len(got) != 1 || got[0].Type != seqdiff.Change || got[0].Source.Position != 1 {
		t.Errorf("DiffFunc(...) = %v, want a single change at 1", got)
	}
}

func TestDiffHashFunc(t *testing.T) {
	x := []string{"APPLE", "BANANA", "cherry"}
	y := []string{"apple", "Banana", "date"}
	hash := func(s string) uint64 { return maphash.String(seed, strings.ToLower(s)) }
	got := seqdiff.DiffHashFunc(x, y, strings.EqualFold, hash)
	want := []seqdiff.Delta[string]{
		{Type: seqdiff.Change, Source: chunk(2, "cherry"), Target: chunk(2, "date")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffHashFunc(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestDiffEquivalence(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("equal-error", func(t *testing.T) {
		e := seqdiff.Equivalence[string]{
			Equal: func(a, b string) (bool, error) {
				if a == "bad" || b == "bad" {
					return false, errBoom
				}
				return a == b, nil
			},
		}
		got, err := seqdiff.DiffEquivalence([]string{"a", "b"}, []string{"a", "bad"}, e)
		if err != errBoom {
			t.Errorf("DiffEquivalence(...) returned error %v, want %v", err, errBoom)
		}
		if got != nil {
			t.Errorf("DiffEquivalence(...) returned %v on error, want nil", got)
		}
	})

	t.Run("hash-error", func(t *testing.T) {
		e := seqdiff.Equivalence[string]{
			Equal: func(a, b string) (bool, error) { return a == b, nil },
			Hash: func(v string) (uint64, error) {
				if v == "bad" {
					return 0, errBoom
				}
				return maphash.String(seed, v), nil
			},
		}
		_, err := seqdiff.DiffEquivalence([]string{"bad"}, []string{"a"}, e)
		if err != errBoom {
			t.Errorf("DiffEquivalence(...) returned error %v, want %v", err, errBoom)
		}
	})

	t.Run("hash-mismatch-skips-equal", func(t *testing.T) {
		calls := 0
		e := seqdiff.Equivalence[string]{
			Equal: func(a, b string) (bool, error) {
				calls++
				return a == b, nil
			},
			Hash: func(v string) (uint64, error) { return maphash.String(seed, v), nil },
		}
		got, err := seqdiff.DiffEquivalence([]string{"a", "b", "c"}, []string{"d", "e"}, e)
		if err != nil {
			t.Fatalf("DiffEquivalence(...) returned unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Type != seqdiff.Change {
			t.Errorf("DiffEquivalence(...) = %v, want a single change", got)
		}
		if calls != 0 {
			t.Errorf("Equal was called %d times, want 0", calls)
		}
	})

	t.Run("nil-equal", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("DiffEquivalence(...) with nil Equal didn't panic")
			}
		}()
		seqdiff.DiffEquivalence([]string{"a"}, []string{"b"}, seqdiff.Equivalence[string]{})
	})

	t.Run("panic-propagates", func(t *testing.T) {
		defer func() {
			if r := recover(); r != "incomparable" {
				t.Errorf("recovered %v, want the panic from eq", r)
			}
		}()
		seqdiff.DiffFunc([]int{1}, []int{2}, func(a, b int) bool { panic("incomparable") })
	})
}

func TestApply(t *testing.T) {
	x := []string{"A", "B", "C", "D"}

	tests := []struct {
		name   string
		deltas []seqdiff.Delta[string]
		want   []string
	}{
		{
			name: "none",
			want: []string{"A", "B", "C", "D"},
		},
		{
			name: "all",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Change, Source: chunk(0, "A", "B", "C", "D"), Target: chunk(0, "X")},
			},
			want: []string{"X"},
		},
		{
			name: "mixed",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(0), Target: chunk(0, "X", "Y")},
				{Type: seqdiff.Delete, Source: chunk(1, "B"), Target: chunk(3)},
				{Type: seqdiff.Change, Source: chunk(3, "D"), Target: chunk(4, "Z")},
			},
			want: []string{"X", "Y", "A", "C", "Z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seqdiff.Apply(x, tt.deltas)
			if err != nil {
				t.Fatalf("Apply(...) returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestApplyInvalid(t *testing.T) {
	x := []string{"A", "B", "C", "D"}

	tests := []struct {
		name   string
		deltas []seqdiff.Delta[string]
	}{
		{
			name: "wrong-type",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(0, "A"), Target: chunk(0, "X")},
			},
		},
		{
			name: "unknown-type",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Type(42), Source: chunk(0, "A"), Target: chunk(0, "X")},
			},
		},
		{
			name: "out-of-bounds",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Delete, Source: chunk(3, "D", "E"), Target: chunk(3)},
			},
		},
		{
			name: "unordered",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Delete, Source: chunk(2, "C"), Target: chunk(2)},
				{Type: seqdiff.Delete, Source: chunk(0, "A"), Target: chunk(0)},
			},
		},
		{
			name: "inconsistent-target-position",
			deltas: []seqdiff.Delta[string]{
				{Type: seqdiff.Insert, Source: chunk(1), Target: chunk(0, "X")},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seqdiff.Apply(x, tt.deltas)
			if !errors.Is(err, seqdiff.ErrInvalidDeltas) {
				t.Errorf("Apply(...) returned error %v, want %v", err, seqdiff.ErrInvalidDeltas)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	for typ, want := range map[seqdiff.Type]string{
		seqdiff.Insert:   "Insert",
		seqdiff.Delete:   "Delete",
		seqdiff.Change:   "Change",
		seqdiff.Type(42): "Type(42)",
	} {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", int(typ), got, want)
		}
	}
}

func TestRandomProperties(t *testing.T) {
	rng := rand.New(rand.NewChaCha8([32]byte{}))
	for i := range 300 {
		x := randomInput(rng, 60, 1+rng.IntN(8))
		y := mutate(rng, x)
		for _, c := range configs {
			got := seqdiff.Diff(x, y, c.opts...)
			if err := deltacheck.Check(x, y, got, eq[int]); err != nil {
				t.Fatalf("case %d: Diff(%v, %v) with %s returned invalid deltas: %v", i, x, y, c.name, err)
			}
			applied, err := seqdiff.Apply(x, got)
			if err != nil {
				t.Fatalf("case %d: Apply(...) with %s failed: %v", i, c.name, err)
			}
			if diff := cmp.Diff(y, applied, cmp.Comparer(slices.Equal[[]int])); diff != "" {
				t.Fatalf("case %d: Apply(x, Diff(x, y)) with %s differs from y [-want,+got]:\n%s", i, c.name, diff)
			}
			if self := seqdiff.Diff(x, x, c.opts...); self != nil {
				t.Fatalf("case %d: Diff(x, x) with %s = %v, want nil", i, c.name, self)
			}
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	x := randomInput(rng, 2000, 50)
	y := mutate(rng, x)
	want := seqdiff.Diff(x, y)

	var g errgroup.Group
	results := make([][]seqdiff.Delta[int], 16)
	for i := range results {
		g.Go(func() error {
			results[i] = seqdiff.Diff(x, y)
			return deltacheck.Check(x, y, results[i], eq[int])
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Diff(...) returned invalid deltas: %v", err)
	}
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("concurrent Diff(...) #%d differs [-want,+got]:\n%s", i, diff)
		}
	}
}

func randomInput(rng *rand.Rand, maxLen, alphabet int) []int {
	out := make([]int, rng.IntN(maxLen+1))
	for i := range out {
		out[i] = rng.IntN(alphabet)
	}
	return out
}

// mutate returns a copy of in with a few random insertions, deletions and replacements.
func mutate(rng *rand.Rand, in []int) []int {
	out := slices.Clone(in)
	for range rng.IntN(6) {
		switch i := rng.IntN(len(out) + 1); rng.IntN(3) {
		case 0:
			out = slices.Insert(out, i, -1-rng.IntN(3))
		case 1:
			if i < len(out) {
				out = slices.Delete(out, i, i+1)
			}
		case 2:
			if i < len(out) {
				out[i] = -1 - rng.IntN(3)
			}
		}
	}
	return out
}

func BenchmarkDiff(b *testing.B) {
	params := []struct {
		N, M int // Length of x and y respectively
		D    int // Number of edits (besides edits due to size differences)
	}{
		{50, 50, 10},
		{500, 50, 10},
		{50, 500, 10},
		{500, 500, 10},
		{500, 500, 100},
		{5000, 5500, 100},
	}

	for _, p := range params {
		name := fmt.Sprintf("N=%d_M=%d_D=%d", p.N, p.M, p.D)
		rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(name))))

		// Construct inputs based on the N, M, D specification.
		flipped := false
		n, m := p.N, p.M
		if n < m {
			n, m = m, n
			flipped = true
		}

		x := make([]int, n)
		for i := range x {
			x[i] = rng.IntN(100)
		}

		y := make([]int, m)
		delta := 0
		if n != m {
			delta = rng.IntN((n - m) / 2)
		}
		for i := range y {
			y[i] = x[i+delta]
		}

		// We might already have some changes due to the different sizes for N and M, add D
		// additional changes.
		for d := p.D; d > 0; {
			i := rng.IntN(len(y))
			if y[i] >= 0 {
				y[i] = -y[i] - 1
				d--
			}
		}

		if flipped {
			x, y = y, x
		}

		for _, c := range configs {
			b.Run(name+"/"+c.name, func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_ = seqdiff.Diff(x, y, c.opts...)
				}
			})
		}
	}
}
