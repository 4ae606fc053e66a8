package trace

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src string) (int, []Event, error) {
	t.Helper()
	r := NewReader(strings.NewReader(src))
	flag, err := r.Header()
	if err != nil {
		return 0, nil, err
	}
	var events []Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return flag, events, nil
		}
		if err != nil {
			return flag, events, err
		}
		events = append(events, ev)
	}
}

func TestReaderParsesEvents(t *testing.T) {
	src := `1
# arrivals
0 1 3

5 1 7
6 2 4
9 3 4
10 4
11 9
`
	flag, events, err := readAll(t, src)
	require.NoError(t, err)
	assert.Equal(t, 1, flag)
	assert.Equal(t, []Event{
		{Line: 3, Time: 0, Op: OpArrive, Code: 1, Arg: 3},
		{Line: 5, Time: 5, Op: OpArrive, Code: 1, Arg: 7},
		{Line: 6, Time: 6, Op: OpIORequest, Code: 2, Arg: 4},
		{Line: 7, Time: 9, Op: OpIODone, Code: 3, Arg: 4},
		{Line: 8, Time: 10, Op: OpTerminate, Code: 4},
		{Line: 9, Time: 11, Op: OpUnknown, Code: 9},
	}, events)
}

func TestReaderMalformed(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "header not a number", src: "yes\n"},
		{name: "header with extra fields", src: "0 1\n"},
		{name: "missing op", src: "0\n5\n"},
		{name: "bad time", src: "0\nx 1 2\n"},
		{name: "bad op", src: "0\n1 y 2\n"},
		{name: "arrive without priority", src: "0\n1 1\n"},
		{name: "io without device", src: "0\n1 2\n"},
		{name: "bad argument", src: "0\n1 3 z\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := readAll(t, tc.src)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReaderErrorCarriesLine(t *testing.T) {
	_, _, err := readAll(t, "0\n0 1 1\n2 1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestNextBeforeHeader(t *testing.T) {
	r := NewReader(strings.NewReader("0\n"))
	_, err := r.Next()
	assert.Error(t, err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "arrive", OpArrive.String())
	assert.Equal(t, "io-request", OpIORequest.String())
	assert.Equal(t, "io-complete", OpIODone.String())
	assert.Equal(t, "terminate", OpTerminate.String())
	assert.Equal(t, "unknown", Op(12).String())
}
