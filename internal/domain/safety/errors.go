package safety

import "fmt"

// EmptyBatchError reports that zero routes survived normalization and
// extraction. Callers surface it as a "no safe routes found" failure rather
// than returning an empty ranking.
type EmptyBatchError struct{}

func (e *EmptyBatchError) Error() string {
	return "no candidate routes to evaluate"
}

// PartialExtractionError reports that factor extraction failed for a single
// route. The route is dropped from ranking; sibling evaluations continue.
type PartialExtractionError struct {
	RouteID string
	Err     error
}

func (e *PartialExtractionError) Error() string {
	return fmt.Sprintf("factor extraction failed for %s: %v", e.RouteID, e.Err)
}

func (e *PartialExtractionError) Unwrap() error {
	return e.Err
}
