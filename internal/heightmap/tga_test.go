package heightmap

import (
	"testing"
)

func tgaHeader(imageType byte, width, height int, bpp byte, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeTGATrueColorBottomUp(t *testing.T) {
	// 2x2, 24-bit BGR, stored bottom row first.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, 0)
	data = append(data,
		9, 9, 30, 9, 9, 40, // bottom row: R=30, R=40
		9, 9, 10, 9, 9, 20, // top row: R=10, R=20
	)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	want := []uint8{10, 20, 30, 40}
	for i, v := range want {
		if img.Pix[i] != v {
			t.Errorf("pixel %d: expected %d, got %d", i, v, img.Pix[i])
		}
	}
}

func TestDecodeTGAGrayRLE(t *testing.T) {
	// 4x1 top-to-bottom: one run of three 100s, then one raw 7.
	data := tgaHeader(tgaGrayRLE, 4, 1, 8, 0x20)
	data = append(data, 0x82, 100, 0x00, 7)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA: %v", err)
	}
	want := []uint8{100, 100, 100, 7}
	for i, v := range want {
		if img.Pix[i] != v {
			t.Errorf("pixel %d: expected %d, got %d", i, v, img.Pix[i])
		}
	}
}

func TestDecodeTGAThroughDecode(t *testing.T) {
	data := tgaHeader(tgaGray, 2, 1, 8, 0x20)
	data = append(data, 0, 255)

	hm, err := Decode(data, ".TGA")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	checkHeights(t, hm, []float32{0, 1}, 2, 1)
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			h := tgaHeader(tgaTrueColor, 1, 1, 24, 0)
			h[1] = 1
			return h
		}()},
		{"unsupported type", tgaHeader(1, 1, 1, 8, 0)},
		{"bad depth", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"empty", tgaHeader(tgaGray, 0, 1, 8, 0)},
		{"truncated raw", append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaGrayRLE, 4, 1, 8, 0), 0x81, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
