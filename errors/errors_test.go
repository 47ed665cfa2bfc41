package errors

import (
	stderr "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"root error": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"wrapped once": {
			kind: ErrLimit,
			err:  Wrap(ErrLimit, "series 1"),
			want: true,
		},
		"wrapped twice": {
			kind: ErrUnauthorized,
			err:  Wrap(Wrapf(ErrUnauthorized, "nonce %d", 4), "burn"),
			want: true,
		},
		"different kind": {
			kind: ErrNotFound,
			err:  Wrap(ErrDuplicate, "token"),
			want: false,
		},
		"stdlib error": {
			kind: ErrInput,
			err:  stderr.New("input"),
			want: false,
		},
		"nil kind and nil error": {
			kind: nil,
			err:  nil,
			want: true,
		},
		"nil kind and typed nil error": {
			kind: nil,
			err:  (*wrappedError)(nil),
			want: true,
		},
		"multi error contains kind": {
			kind: ErrInput,
			err:  Append(ErrNotFound, Wrap(ErrInput, "key")),
			want: true,
		},
		"field error": {
			kind: ErrEmpty,
			err:  Field("Receiver", ErrEmpty, "required"),
			want: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "token %q", "1:1")
	if got, want := err.Error(), `token "1:1": not found`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestStackTraceIsPrinted(t *testing.T) {
	err := Wrap(Wrap(ErrLimit, "inner"), "outer")
	msg := fmt.Sprintf("%+v", err)
	if !strings.Contains(msg, "errors_test.go") {
		t.Fatalf("stack trace not found in %q", msg)
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":          {err: nil, want: 0},
		"root":         {err: ErrLimit, want: 17},
		"wrapped":      {err: Wrap(ErrUnauthorized, "x"), want: 2},
		"stdlib":       {err: stderr.New("x"), want: 1},
		"multi":        {err: Append(ErrInput, ErrNotFound), want: 14},
		"field":        {err: Field("ID", ErrEmpty, ""), want: 9},
		"wrapped std":  {err: Wrap(stderr.New("x"), "y"), want: 1},
		"panic":        {err: Wrapf(ErrPanic, "%v", "boom"), want: 111222},
		"already used": {err: ErrDuplicate, want: 6},
		"coding error": {err: Wrap(ErrHuman, "x"), want: 7},
		"empty":        {err: ErrEmpty, want: 9},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.Code(), "again")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}
