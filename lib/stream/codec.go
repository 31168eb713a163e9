package stream

import (
	"bytes"
	"fmt"
	"math"
)

// maxStringLength is the largest string that fits a 1-byte length prefix
const maxStringLength = math.MaxUint8

// --------------------------------------------------------------------------
// Input primitives
// --------------------------------------------------------------------------

// inputCore decodes typed primitives on top of a backing specific fill
// function. fill must read exactly len(p) bytes and advance the cursor by the
// number of bytes it transferred.
type inputCore struct {
	cur     *Cursor
	fill    func(p []byte) error
	scratch [8]byte
}

func (c *inputCore) next(n int) ([]byte, error) {
	b := c.scratch[:n]
	if err := c.fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *inputCore) GetByte() (byte, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *inputCore) GetBool() (bool, error) {
	b, err := c.GetByte()
	return b != 0, err
}

func (c *inputCore) GetChar() (rune, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return rune(c.cur.order().Uint16(b)), nil
}

func (c *inputCore) GetShort() (int16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return int16(c.cur.order().Uint16(b)), nil
}

func (c *inputCore) GetInt() (int32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return int32(c.cur.order().Uint32(b)), nil
}

func (c *inputCore) GetLong() (int64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return int64(c.cur.order().Uint64(b)), nil
}

func (c *inputCore) GetFloat() (float32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(c.cur.order().Uint32(b)), nil
}

func (c *inputCore) GetDouble() (float64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(c.cur.order().Uint64(b)), nil
}

func (c *inputCore) GetString() (string, error) {
	n, err := c.GetByte()
	if err != nil {
		return "", err
	}
	b, err := c.GetBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *inputCore) GetFixedString(n int) (string, error) {
	b, err := c.GetBytes(n)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(b, "\x00")), nil
}

func (c *inputCore) GetBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrConfig, n)
	}
	if err := c.cur.require(int64(n)); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if err := c.fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// words reads count values of size bytes each in a single fill
func (c *inputCore) words(count, size int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrConfig, count)
	}
	if count > math.MaxInt/size {
		return nil, fmt.Errorf("%w: %d values of %d bytes", ErrCapacity, count, size)
	}
	return c.GetBytes(count * size)
}

func (c *inputCore) GetChars(n int) ([]rune, error) {
	b, err := c.words(n, 2)
	if err != nil {
		return nil, err
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = rune(c.cur.order().Uint16(b[i*2:]))
	}
	return out, nil
}

func (c *inputCore) GetShorts(n int) ([]int16, error) {
	b, err := c.words(n, 2)
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(c.cur.order().Uint16(b[i*2:]))
	}
	return out, nil
}

func (c *inputCore) GetInts(n int) ([]int32, error) {
	b, err := c.words(n, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(c.cur.order().Uint32(b[i*4:]))
	}
	return out, nil
}

func (c *inputCore) GetLongs(n int) ([]int64, error) {
	b, err := c.words(n, 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(c.cur.order().Uint64(b[i*8:]))
	}
	return out, nil
}

func (c *inputCore) GetFloats(n int) ([]float32, error) {
	b, err := c.words(n, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(c.cur.order().Uint32(b[i*4:]))
	}
	return out, nil
}

func (c *inputCore) GetDoubles(n int) ([]float64, error) {
	b, err := c.words(n, 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(c.cur.order().Uint64(b[i*8:]))
	}
	return out, nil
}

func (c *inputCore) GetStrings(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrConfig, n)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := c.GetString()
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *inputCore) GetLine() (string, error) {
	var line []byte
	for {
		b, err := c.GetByte()
		if err != nil {
			// a last line without a line break is still a line
			if len(line) > 0 && IsEnd(err) {
				break
			}
			return string(line), err
		}
		if b == '\n' {
			break
		}
		line = append(line, b)
	}
	return string(bytes.TrimSuffix(line, []byte{'\r'})), nil
}

func (c *inputCore) ScanFor(seq []byte) ([]byte, error) {
	if len(seq) == 0 {
		return nil, nil
	}
	var seen []byte
	for !bytes.HasSuffix(seen, seq) {
		b, err := c.GetByte()
		if err != nil {
			return seen, err
		}
		seen = append(seen, b)
	}
	return seen[:len(seen)-len(seq)], nil
}

// --------------------------------------------------------------------------
// Output primitives
// --------------------------------------------------------------------------

// outputCore encodes typed primitives on top of a backing specific drain
// function. drain must write all of p or fail, advancing the cursor by the
// number of bytes it transferred.
type outputCore struct {
	cur     *Cursor
	drain   func(p []byte) error
	scratch [8]byte
}

// Write implements io.Writer. It writes all of p or nothing.
func (c *outputCore) Write(p []byte) (int, error) {
	if err := c.drain(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *outputCore) PutByte(v byte) error {
	c.scratch[0] = v
	return c.drain(c.scratch[:1])
}

func (c *outputCore) PutBool(v bool) error {
	if v {
		return c.PutByte(1)
	}
	return c.PutByte(0)
}

func (c *outputCore) PutChar(v rune) error {
	c.cur.order().PutUint16(c.scratch[:2], uint16(v))
	return c.drain(c.scratch[:2])
}

func (c *outputCore) PutShort(v int16) error {
	c.cur.order().PutUint16(c.scratch[:2], uint16(v))
	return c.drain(c.scratch[:2])
}

func (c *outputCore) PutInt(v int32) error {
	c.cur.order().PutUint32(c.scratch[:4], uint32(v))
	return c.drain(c.scratch[:4])
}

func (c *outputCore) PutLong(v int64) error {
	c.cur.order().PutUint64(c.scratch[:8], uint64(v))
	return c.drain(c.scratch[:8])
}

func (c *outputCore) PutFloat(v float32) error {
	c.cur.order().PutUint32(c.scratch[:4], math.Float32bits(v))
	return c.drain(c.scratch[:4])
}

func (c *outputCore) PutDouble(v float64) error {
	c.cur.order().PutUint64(c.scratch[:8], math.Float64bits(v))
	return c.drain(c.scratch[:8])
}

func (c *outputCore) PutString(v string) error {
	if len(v) > maxStringLength {
		return fmt.Errorf("%w: string of %d bytes exceeds the %d byte length prefix", ErrCapacity, len(v), maxStringLength)
	}
	b := make([]byte, 1+len(v))
	b[0] = byte(len(v))
	copy(b[1:], v)
	return c.drain(b)
}

func (c *outputCore) PutFixedString(v string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrConfig, n)
	}
	b := make([]byte, n)
	copy(b, v)
	return c.drain(b)
}

func (c *outputCore) PutBytes(v []byte) error {
	return c.drain(v)
}

func (c *outputCore) PutChars(v []rune) error {
	b := make([]byte, len(v)*2)
	for i, r := range v {
		c.cur.order().PutUint16(b[i*2:], uint16(r))
	}
	return c.drain(b)
}

func (c *outputCore) PutShorts(v []int16) error {
	b := make([]byte, len(v)*2)
	for i, s := range v {
		c.cur.order().PutUint16(b[i*2:], uint16(s))
	}
	return c.drain(b)
}

func (c *outputCore) PutInts(v []int32) error {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		c.cur.order().PutUint32(b[i*4:], uint32(x))
	}
	return c.drain(b)
}

func (c *outputCore) PutLongs(v []int64) error {
	b := make([]byte, len(v)*8)
	for i, x := range v {
		c.cur.order().PutUint64(b[i*8:], uint64(x))
	}
	return c.drain(b)
}

func (c *outputCore) PutFloats(v []float32) error {
	b := make([]byte, len(v)*4)
	for i, f := range v {
		c.cur.order().PutUint32(b[i*4:], math.Float32bits(f))
	}
	return c.drain(b)
}

func (c *outputCore) PutDoubles(v []float64) error {
	b := make([]byte, len(v)*8)
	for i, f := range v {
		c.cur.order().PutUint64(b[i*8:], math.Float64bits(f))
	}
	return c.drain(b)
}

func (c *outputCore) PutStrings(v []string) error {
	for _, s := range v {
		if err := c.PutString(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *outputCore) PutLine(s string) error {
	b := make([]byte, len(s)+1)
	copy(b, s)
	b[len(s)] = '\n'
	return c.drain(b)
}

func (c *outputCore) PutBreakLine() error {
	return c.PutByte('\n')
}
