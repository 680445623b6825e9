package archive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sgostarter/librecorder/recorder"
	"github.com/spf13/cast"
)

// ParseTable reads one sample per line as "x y [w]" or "x,y[,w]". Blank lines
// and everything after '#' are ignored. A missing w is 0. Rows keep their
// input order; feed them to Replace to get an ordered recorder.
func ParseTable(r io.Reader) (ss []recorder.Sample, err error) {
	scanner := bufio.NewScanner(r)

	line := 0

	for scanner.Scan() {
		line++

		text := scanner.Text()
		if pos := strings.IndexByte(text, '#'); pos >= 0 {
			text = text[:pos]
		}

		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 || len(fields) > 3 {
			err = fmt.Errorf("%w: line %d: want 2 or 3 columns, got %d", ErrBadData, line, len(fields))

			return
		}

		var vs [3]float64

		for i, field := range fields {
			if vs[i], err = cast.ToFloat64E(field); err != nil {
				err = fmt.Errorf("%w: line %d: %v", ErrBadData, line, err)

				return
			}
		}

		ss = append(ss, recorder.Sample{X: vs[0], Y: vs[1], W: vs[2]})
	}

	err = scanner.Err()

	return
}

// WriteTable writes ss as tab separated "x y w" lines that ParseTable reads
// back exactly.
func WriteTable(w io.Writer, ss []recorder.Sample) error {
	bw := bufio.NewWriter(w)

	for _, s := range ss {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n",
			cast.ToString(s.X), cast.ToString(s.Y), cast.ToString(s.W)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
