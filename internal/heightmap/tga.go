package heightmap

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types understood by decodeTGA.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes the first channel of a TGA file into a grayscale image.
// For true-color files the first channel is red (pixels are stored BGR on disk).
func decodeTGA(data []byte) (*image.Gray, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}

	var channel int // byte offset of the first channel within a pixel
	switch imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("tga: unsupported true-color depth %d", bpp)
		}
		channel = 2 // BGR(A)
	case tgaGray, tgaGrayRLE:
		if bpp != 8 {
			return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	pixels := data[offset:]
	bytesPerPixel := bpp / 8
	rle := imageType == tgaTrueColorRLE || imageType == tgaGrayRLE

	img := image.NewGray(image.Rect(0, 0, width, height))
	set := func(i int, v uint8) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.Pix[y*img.Stride+x] = v
	}

	total := width * height
	if !rle {
		if len(pixels) < total*bytesPerPixel {
			return nil, errTGATruncated
		}
		for i := range total {
			set(i, pixels[i*bytesPerPixel+channel])
		}
		return img, nil
	}

	pos := 0
	for i := 0; i < total; {
		if pos >= len(pixels) {
			return nil, errTGATruncated
		}
		packet := pixels[pos]
		pos++
		count := int(packet&0x7F) + 1
		repeat := packet&0x80 != 0

		for n := 0; n < count && i < total; n++ {
			if pos+bytesPerPixel > len(pixels) {
				return nil, errTGATruncated
			}
			set(i, pixels[pos+channel])
			i++
			if !repeat {
				pos += bytesPerPixel
			}
		}
		if repeat {
			pos += bytesPerPixel
		}
	}
	return img, nil
}
