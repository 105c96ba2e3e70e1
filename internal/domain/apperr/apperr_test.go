package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsAsUnwrapsWrappedUpstreamError(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := fmt.Errorf("while querying pois: %w", Upstream("postgres", base))

	var upstreamErr *UpstreamError
	if !errors.As(wrapped, &upstreamErr) {
		t.Fatal("expected errors.As to find *UpstreamError through fmt.Errorf wrapping")
	}
	if upstreamErr.Collaborator != "postgres" {
		t.Errorf("got collaborator %q, want %q", upstreamErr.Collaborator, "postgres")
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected errors.Is to reach the original upstream cause")
	}
}

func TestTypedErrorsAreDistinguishable(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"input", Input("lat", "out of range")},
		{"cache_miss", CacheMiss("route_id", "3")},
		{"exhausted", Exhausted("category_filter", "")},
		{"conflict", Conflict("3", "poi_1")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var inputErr *InputError
			var cacheMissErr *CacheMissError
			var exhaustedErr *ExhaustionError
			var conflictErr *ConflictError

			matches := 0
			for _, ok := range []bool{
				errors.As(tc.err, &inputErr),
				errors.As(tc.err, &cacheMissErr),
				errors.As(tc.err, &exhaustedErr),
				errors.As(tc.err, &conflictErr),
			} {
				if ok {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("expected exactly one typed match for %s, got %d", tc.name, matches)
			}
			if tc.err.Error() == "" {
				t.Fatal("expected non-empty error message")
			}
		})
	}
}
