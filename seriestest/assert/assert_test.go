package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/nftseries/errors"
)

// recorder implements Tester and only remembers if the test failed.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":           {value: nil, wantFail: false},
		"nil error":     {value: error(nil), wantFail: false},
		"nil pointer":   {value: (*int)(nil), wantFail: false},
		"zero int":      {value: 0, wantFail: true},
		"non nil error": {value: errors.ErrNotFound, wantFail: true},
		"stdlib error":  {value: fmt.Errorf("x"), wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v", tc.wantFail)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []string{"1:1"}, []string{"1:1"})
	if r.failed {
		t.Fatal("equal slices")
	}
	Equal(&r, uint64(1), 1)
	if !r.failed {
		t.Fatal("different types are never equal")
	}
}

func TestIsErr(t *testing.T) {
	var r recorder
	IsErr(&r, errors.ErrLimit, errors.Wrap(errors.ErrLimit, "series 1"))
	IsErr(&r, nil, nil)
	if r.failed {
		t.Fatal("matching errors")
	}
	IsErr(&r, errors.ErrNotFound, errors.ErrLimit)
	if !r.failed {
		t.Fatal("different errors")
	}
}

func TestPanics(t *testing.T) {
	var r recorder
	Panics(&r, func() { panic("boom") })
	if r.failed {
		t.Fatal("function panicked")
	}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("function did not panic")
	}
}
