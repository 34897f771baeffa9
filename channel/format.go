package channel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vlsirouter/drcore/grid"
	"github.com/vlsirouter/drcore/model"
)

// Encode writes ch in the legacy channel dump format of spec.md §6,
// preserved exactly so golden-output tests can compare against fixture
// files. Net ids are written as the integers the legacy tool used;
// Decode reads the same integers straight back into model.NetId, so
// the round trip is exact without a separate name table.
func Encode(w io.Writer, ch *Channel) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "* %d %d\n", ch.Width, ch.Length)

	left := ch.Sides[grid.Left]
	for i := 1; i <= left.Len(); i++ {
		if i > 1 {
			fmt.Fprint(bw, " ")
		}
		fmt.Fprint(bw, netIdToInt(left.At(i).Net))
	}
	fmt.Fprint(bw, "\n")

	bottom, top := ch.Sides[grid.Bottom], ch.Sides[grid.Top]
	for c := 1; c <= ch.Length; c++ {
		fmt.Fprintf(bw, "%d", netIdToInt(bottom.At(c).Net))
		for r := 1; r <= ch.Width; r++ {
			fmt.Fprint(bw, " ", obstacleChar(ch.Result[c-1][r-1]))
		}
		fmt.Fprintf(bw, " %d\n", netIdToInt(top.At(c).Net))
	}

	right := ch.Sides[grid.Right]
	for i := 1; i <= right.Len(); i++ {
		if i > 1 {
			fmt.Fprint(bw, " ")
		}
		fmt.Fprint(bw, netIdToInt(right.At(i).Net))
	}
	fmt.Fprint(bw, "\n")

	return bw.Flush()
}

// Decode reads the legacy channel dump format and returns a
// free-standing Channel (Kind Normal, unit grid spacing) populated
// with the net-id and obstacle data the format carries. It builds its
// own Model internally since the format has no channel-plane concept.
func Decode(r io.Reader) (*Channel, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("channel: empty input")
	}
	var star string
	var width, length int
	if _, err := fmt.Sscanf(sc.Text(), "%s %d %d", &star, &width, &length); err != nil || star != "*" {
		return nil, fmt.Errorf("channel: bad header %q", sc.Text())
	}

	m := NewModel(grid.Point{}, 1)
	id, err := m.DefineChannel(Normal, grid.Rect{XLo: 0, YLo: 0, XHi: length, YHi: width})
	if err != nil {
		return nil, err
	}
	ch := m.Channel(id)

	if !sc.Scan() {
		return nil, fmt.Errorf("channel: missing left-pin row")
	}
	leftIds, err := parseInts(sc.Text(), width)
	if err != nil {
		return nil, fmt.Errorf("channel: left-pin row: %w", err)
	}
	left := ch.Sides[grid.Left]
	for i, n := range leftIds {
		left.At(i + 1).Net = intToNetId(n)
	}

	bottom, top := ch.Sides[grid.Bottom], ch.Sides[grid.Top]
	for c := 1; c <= length; c++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("channel: missing interior row %d", c)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != width+2 {
			return nil, fmt.Errorf("channel: interior row %d has %d fields, want %d", c, len(fields), width+2)
		}
		bn, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("channel: interior row %d bottom id: %w", c, err)
		}
		bottom.At(c).Net = intToNetId(bn)

		for r := 1; r <= width; r++ {
			ch.Result[c-1][r-1] = obstacleFlagsFromChar(fields[r])
		}

		tn, err := strconv.Atoi(fields[width+1])
		if err != nil {
			return nil, fmt.Errorf("channel: interior row %d top id: %w", c, err)
		}
		top.At(c).Net = intToNetId(tn)
	}

	if !sc.Scan() {
		return nil, fmt.Errorf("channel: missing right-pin row")
	}
	rightIds, err := parseInts(sc.Text(), width)
	if err != nil {
		return nil, fmt.Errorf("channel: right-pin row: %w", err)
	}
	right := ch.Sides[grid.Right]
	for i, n := range rightIds {
		right.At(i + 1).Net = intToNetId(n)
	}

	return ch, sc.Err()
}

func parseInts(line string, want int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != want {
		return nil, fmt.Errorf("got %d fields, want %d", len(fields), want)
	}
	out := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func netIdToInt(id model.NetId) int {
	switch id {
	case NetUnassigned:
		return 0
	case NetBlocked:
		return -1
	}
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

func intToNetId(n int) model.NetId {
	switch {
	case n == 0:
		return NetUnassigned
	case n < 0:
		return NetBlocked
	default:
		return model.NetId(strconv.Itoa(n))
	}
}

func obstacleChar(f CellFlags) string {
	switch {
	case f.Has(FlagBlkMetal) && f.Has(FlagBlkPoly):
		return "x"
	case f.Has(FlagBlkMetal):
		return "m"
	case f.Has(FlagBlkPoly):
		return "p"
	default:
		return "."
	}
}

func obstacleFlagsFromChar(s string) CellFlags {
	switch s {
	case ".":
		return 0
	case "m", "M":
		return FlagBlkMetal
	case "p", "P":
		return FlagBlkPoly
	default:
		return FlagBlkMetal | FlagBlkPoly
	}
}
