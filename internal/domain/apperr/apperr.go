// Package apperr implements the error taxonomy from spec.md §7: input
// errors, cache-miss errors, exhaustion errors, and upstream errors. It
// generalizes the teacher's handler.ValidationError (a typed struct
// inspected by string-matching in the handler) into typed errors inspected
// with errors.As/errors.Is, so handlers never need strings.Contains on an
// error message.
package apperr

import "fmt"

// InputError is an input error (§7): bad coordinates, unknown mode,
// non-parseable time, top_k <= 0. Surfaced immediately, no side effects.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Input(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}

// CacheMissError is a cache-miss error (§7) on substitution: user entry
// absent, route_id absent, old_poi_id absent.
type CacheMissError struct {
	Resource string // "user_entry", "route_id", "old_poi_id"
	Key      string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("cache miss: %s %q not found", e.Resource, e.Key)
}

func CacheMiss(resource, key string) *CacheMissError {
	return &CacheMissError{Resource: resource, Key: key}
}

// ExhaustionError is an exhaustion error (§7): no candidates in category
// after filtering, no POI open at target time, pool empty after
// exclusions. It names which filter eliminated all candidates.
type ExhaustionError struct {
	Filter string
	Detail string
}

func (e *ExhaustionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("exhausted: %s eliminated all candidates", e.Filter)
	}
	return fmt.Sprintf("exhausted: %s eliminated all candidates (%s)", e.Filter, e.Detail)
}

func Exhausted(filter, detail string) *ExhaustionError {
	return &ExhaustionError{Filter: filter, Detail: detail}
}

// UpstreamError wraps a transient or terminal failure from a database,
// vector index, embedding service, or cache collaborator (§7). No call
// site wraps upstream calls in internal/platform/retry, so a failure is
// surfaced on its first occurrence, without retry.
type UpstreamError struct {
	Collaborator string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error from %s: %v", e.Collaborator, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(collaborator string, err error) *UpstreamError {
	return &UpstreamError{Collaborator: collaborator, Err: err}
}

// ConflictError signals a substitution confirm race (§5): the old POI is
// no longer at the expected position in the cached route.
type ConflictError struct {
	RouteID string
	POIID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: poi %q no longer at expected position in route %q", e.POIID, e.RouteID)
}

func Conflict(routeID, poiID string) *ConflictError {
	return &ConflictError{RouteID: routeID, POIID: poiID}
}
