package timeseries

import (
	"errors"
	"fmt"
)

// Split errors.
var (
	// ErrInsufficientData indicates the series is too short to fit
	// reliably. Parameter estimation on fewer observations than the
	// caller's minimum is under-determined and is rejected up front.
	ErrInsufficientData = errors.New("insufficient data points")

	// ErrInvalidSplit indicates a malformed train/test partition request.
	ErrInvalidSplit = errors.New("invalid train/test split")
)

// Split validates a series and partitions it into a training prefix and a
// held-out test suffix of testSize observations. The two parts are copies;
// their concatenation equals the original series exactly, with no
// resampling or interpolation. The input is not mutated.
func Split(s *Series, minLength, testSize int) (train, test *Series, err error) {
	if minLength < 1 || testSize < 1 {
		return nil, nil, fmt.Errorf("%w: minLength=%d testSize=%d", ErrInvalidSplit, minLength, testSize)
	}
	if s.Len() < minLength {
		return nil, nil, fmt.Errorf("%w: have %d observations, need %d", ErrInsufficientData, s.Len(), minLength)
	}
	if testSize >= s.Len() {
		return nil, nil, fmt.Errorf("%w: testSize=%d must be smaller than series length %d", ErrInvalidSplit, testSize, s.Len())
	}

	cut := s.Len() - testSize
	return s.Slice(0, cut), s.Slice(cut, s.Len()), nil
}
