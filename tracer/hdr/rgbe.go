package hdr

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	formatRGBE = "32-bit_rle_rgbe"
	// Scanlines outside this width range are never run-length encoded.
	minRLEWidth = 8
	maxRLEWidth = 0x7fff
	// Largest accepted picture, 16k by 16k.
	maxPixels = 1 << 28
)

// DecodeRGBE reads a Radiance picture. Flat, old-style and new-style
// run-length encoded scanlines are supported; only the standard -Y H +X W
// orientation is accepted.
func DecodeRGBE(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	width, height, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	img := NewImage(width, height)
	scan := make([][4]byte, width)
	for y := 0; y < height; y++ {
		if err := readScanline(br, scan); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		for x, p := range scan {
			cr, cg, cb := rgbeToFloat(p)
			img.Set(x, y, cr, cg, cb)
		}
	}
	return img, nil
}

func readHeader(br *bufio.Reader) (width, height int, err error) {
	line, err := readLine(br)
	if err != nil {
		return 0, 0, err
	}
	if !strings.HasPrefix(line, "#?") {
		return 0, 0, fmt.Errorf("%w: missing #? signature", ErrMalformed)
	}
	format := ""
	for {
		line, err = readLine(br)
		if err != nil {
			return 0, 0, err
		}
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "FORMAT="); ok {
			format = strings.TrimSpace(v)
		}
	}
	// A missing FORMAT line is read as RGBE, as Radiance itself does.
	if format != "" && format != formatRGBE {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	line, err = readLine(br)
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("%w: unsupported resolution line %q", ErrMalformed, line)
	}
	height, err1 := strconv.Atoi(fields[1])
	width, err2 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: bad resolution %q", ErrMalformed, line)
	}
	if width > maxPixels/height {
		return 0, 0, fmt.Errorf("%w: resolution %dx%d too large", ErrMalformed, width, height)
	}
	return width, height, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", fmt.Errorf("%w: truncated header", ErrMalformed)
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readScanline(br *bufio.Reader, scan [][4]byte) error {
	width := len(scan)
	var first [4]byte
	if _, err := io.ReadFull(br, first[:]); err != nil {
		return truncated(err)
	}
	if width < minRLEWidth || width > maxRLEWidth || first[0] != 2 || first[1] != 2 || first[2]&0x80 != 0 {
		scan[0] = first
		return readFlat(br, scan)
	}
	if int(first[2])<<8|int(first[3]) != width {
		return fmt.Errorf("%w: scanline width mismatch", ErrMalformed)
	}

	// New-style RLE stores each channel separately.
	for ch := 0; ch < 4; ch++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return truncated(err)
			}
			if count > 128 {
				n := int(count) - 128
				if x+n > width {
					return fmt.Errorf("%w: run overflows scanline", ErrMalformed)
				}
				v, err := br.ReadByte()
				if err != nil {
					return truncated(err)
				}
				for ; n > 0; n-- {
					scan[x][ch] = v
					x++
				}
				continue
			}
			n := int(count)
			if n == 0 || x+n > width {
				return fmt.Errorf("%w: bad literal run", ErrMalformed)
			}
			for ; n > 0; n-- {
				v, err := br.ReadByte()
				if err != nil {
					return truncated(err)
				}
				scan[x][ch] = v
				x++
			}
		}
	}
	return nil
}

// readFlat continues a scanline whose first pixel is already in scan[0].
// A (1, 1, 1, n) pixel repeats the previous one, old-style.
func readFlat(br *bufio.Reader, scan [][4]byte) error {
	shift := uint(0)
	x := 0
	pending := scan[0]
	for {
		if pending[0] == 1 && pending[1] == 1 && pending[2] == 1 {
			if x == 0 {
				return fmt.Errorf("%w: repeat before first pixel", ErrMalformed)
			}
			n := int(pending[3]) << shift
			if x+n > len(scan) {
				return fmt.Errorf("%w: run overflows scanline", ErrMalformed)
			}
			for ; n > 0; n-- {
				scan[x] = scan[x-1]
				x++
			}
			shift += 8
		} else {
			scan[x] = pending
			x++
			shift = 0
		}
		if x >= len(scan) {
			return nil
		}
		if _, err := io.ReadFull(br, pending[:]); err != nil {
			return truncated(err)
		}
	}
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated pixel data", ErrMalformed)
	}
	return err
}

func rgbeToFloat(p [4]byte) (r, g, b float32) {
	if p[3] == 0 {
		return 0, 0, 0
	}
	f := math.Ldexp(1, int(p[3])-(128+8))
	return float32((float64(p[0]) + 0.5) * f),
		float32((float64(p[1]) + 0.5) * f),
		float32((float64(p[2]) + 0.5) * f)
}

// FloatToRGBE is the inverse of the pixel decoding, used to write test data.
func FloatToRGBE(r, g, b float32) [4]byte {
	v := math.Max(float64(r), math.Max(float64(g), float64(b)))
	if v < 1e-32 {
		return [4]byte{}
	}
	frac, exp := math.Frexp(v)
	scale := frac * 256 / v
	return [4]byte{
		byte(float64(r) * scale),
		byte(float64(g) * scale),
		byte(float64(b) * scale),
		byte(exp + 128),
	}
}
