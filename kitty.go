package vtcore

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// KittyAction is the `a=` key of a Kitty graphics command.
type KittyAction byte

const (
	KittyActionTransmit        KittyAction = 't'
	KittyActionTransmitDisplay KittyAction = 'T'
	KittyActionQuery           KittyAction = 'q'
	KittyActionDisplay         KittyAction = 'p'
	KittyActionDelete          KittyAction = 'd'
)

// KittyFormat is the `f=` pixel format.
type KittyFormat uint32

const (
	KittyFormatRGB  KittyFormat = 24
	KittyFormatRGBA KittyFormat = 32
	KittyFormatPNG  KittyFormat = 100
)

// KittyDelete is the `d=` deletion scope.
type KittyDelete byte

const (
	KittyDeleteAll      KittyDelete = 'a'
	KittyDeleteAllData  KittyDelete = 'A'
	KittyDeleteByID     KittyDelete = 'i'
	KittyDeleteByIDData KittyDelete = 'I'
)

// KittyCommand is one parsed Kitty graphics protocol command (the
// key=value control data plus its base64-decoded payload). Grounded
// directly on the teacher's kitty.go `KittyCommand`/`ParseKittyGraphics`,
// trimmed to the subset of keys this module's executor dispatches.
type KittyCommand struct {
	Action      KittyAction
	Format      KittyFormat
	Compression byte

	ImageID     uint32
	PlacementID uint32

	Width, Height uint32
	More          bool

	SrcX, SrcY uint32
	SrcW, SrcH uint32
	Cols, Rows uint32
	ZIndex     int32

	Delete KittyDelete
	Quiet  uint32

	Payload []byte
}

// ParseKittyGraphics parses the payload of an APC `G` Kitty graphics
// command (without the ST terminator). A leading `G` prefix, as the
// parser delivers it, is stripped here.
func ParseKittyGraphics(data []byte) (*KittyCommand, error) {
	cmd := &KittyCommand{Action: KittyActionTransmitDisplay, Format: KittyFormatRGBA}

	if len(data) > 0 && data[0] == 'G' {
		data = data[1:]
	}

	sep := bytes.IndexByte(data, ';')
	var control, payload []byte
	if sep >= 0 {
		control, payload = data[:sep], data[sep+1:]
	} else {
		control = data
	}

	for _, pair := range bytes.Split(control, []byte(",")) {
		eq := bytes.IndexByte(pair, '=')
		if eq <= 0 {
			continue
		}
		key, value := pair[0], pair[eq+1:]
		switch key {
		case 'a':
			if len(value) > 0 {
				cmd.Action = KittyAction(value[0])
			}
		case 'f':
			cmd.Format = KittyFormat(parseKittyUint32(value))
		case 'o':
			if len(value) > 0 {
				cmd.Compression = value[0]
			}
		case 'i':
			cmd.ImageID = parseKittyUint32(value)
		case 'p':
			cmd.PlacementID = parseKittyUint32(value)
		case 's':
			cmd.Width = parseKittyUint32(value)
		case 'v':
			cmd.Height = parseKittyUint32(value)
		case 'm':
			cmd.More = parseKittyUint32(value) == 1
		case 'x':
			cmd.SrcX = parseKittyUint32(value)
		case 'y':
			cmd.SrcY = parseKittyUint32(value)
		case 'w':
			cmd.SrcW = parseKittyUint32(value)
		case 'h':
			cmd.SrcH = parseKittyUint32(value)
		case 'c':
			cmd.Cols = parseKittyUint32(value)
		case 'r':
			cmd.Rows = parseKittyUint32(value)
		case 'z':
			n, _ := strconv.ParseInt(string(value), 10, 32)
			cmd.ZIndex = int32(n)
		case 'd':
			if len(value) > 0 {
				cmd.Delete = KittyDelete(value[0])
			}
		case 'q':
			cmd.Quiet = parseKittyUint32(value)
		}
	}

	if len(payload) > 0 {
		decoded, err := base64.StdEncoding.DecodeString(string(payload))
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(string(payload))
			if err != nil {
				return nil, fmt.Errorf("kitty: decode payload: %w", err)
			}
		}
		cmd.Payload = decoded
	}

	return cmd, nil
}

// DecodeImageData decompresses (if needed) and decodes cmd's payload
// to RGBA pixels plus dimensions.
func (cmd *KittyCommand) DecodeImageData() ([]byte, uint32, uint32, error) {
	data := cmd.Payload
	if cmd.Compression == 'z' && len(data) > 0 {
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("kitty: zlib reader: %w", err)
		}
		defer r.Close()
		decompressed, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("kitty: zlib decompress: %w", err)
		}
		data = decompressed
	}

	switch cmd.Format {
	case KittyFormatPNG:
		return decodeKittyPNG(data)
	case KittyFormatRGB:
		if cmd.Width == 0 || cmd.Height == 0 {
			return nil, 0, 0, fmt.Errorf("kitty: RGB format requires width and height")
		}
		expected := int(cmd.Width * cmd.Height * 3)
		if len(data) < expected {
			return nil, 0, 0, fmt.Errorf("kitty: short RGB data: got %d want %d", len(data), expected)
		}
		rgba := make([]byte, cmd.Width*cmd.Height*4)
		for i := uint32(0); i < cmd.Width*cmd.Height; i++ {
			rgba[i*4+0] = data[i*3+0]
			rgba[i*4+1] = data[i*3+1]
			rgba[i*4+2] = data[i*3+2]
			rgba[i*4+3] = 255
		}
		return rgba, cmd.Width, cmd.Height, nil
	case KittyFormatRGBA:
		if cmd.Width == 0 || cmd.Height == 0 {
			return nil, 0, 0, fmt.Errorf("kitty: RGBA format requires width and height")
		}
		expected := int(cmd.Width * cmd.Height * 4)
		if len(data) < expected {
			return nil, 0, 0, fmt.Errorf("kitty: short RGBA data: got %d want %d", len(data), expected)
		}
		return data[:expected], cmd.Width, cmd.Height, nil
	default:
		return nil, 0, 0, fmt.Errorf("kitty: unsupported format %d", cmd.Format)
	}
}

func decodeKittyPNG(data []byte) ([]byte, uint32, uint32, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("kitty: decode PNG: %w", err)
		}
	}
	bounds := img.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())
	rgba := make([]byte, width*height*4)
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (uint32(y)*width + uint32(x)) * 4
			rgba[off+0] = uint8(r >> 8)
			rgba[off+1] = uint8(g >> 8)
			rgba[off+2] = uint8(b >> 8)
			rgba[off+3] = uint8(a >> 8)
		}
	}
	return rgba, width, height, nil
}

func parseKittyUint32(b []byte) uint32 {
	n, _ := strconv.ParseUint(string(b), 10, 32)
	return uint32(n)
}

// FormatKittyResponse builds the APC reply for a Kitty graphics
// command, per the client-visible `i=` image id rather than this
// module's internal uuid.
func FormatKittyResponse(clientImageID uint32, message string, isError bool) string {
	var sb strings.Builder
	sb.WriteString("\x1b_G")
	if clientImageID > 0 {
		fmt.Fprintf(&sb, "i=%d", clientImageID)
	}
	sb.WriteString(";")
	if isError {
		sb.WriteString(message)
	} else {
		sb.WriteString("OK")
	}
	sb.WriteString("\x1b\\")
	return sb.String()
}

// KittyDispatcher applies parsed Kitty commands to an ImageManager,
// tracking the chunked-transfer accumulator and the mapping from the
// protocol's client-chosen uint32 image ids to this module's internal
// uuid.UUID storage ids.
type KittyDispatcher struct {
	images *ImageManager

	clientToUUID map[uint32]uuid.UUID

	accumulator   []byte
	accumID       uint32
	accumFormat   KittyFormat
	accumWidth    uint32
	accumHeight   uint32
	accumCompress byte
}

// NewKittyDispatcher returns a dispatcher storing images in images.
func NewKittyDispatcher(images *ImageManager) *KittyDispatcher {
	return &KittyDispatcher{images: images, clientToUUID: make(map[uint32]uuid.UUID)}
}

// Handle applies one parsed command, returning a reply string to send
// back (possibly empty, e.g. when q= suppresses it). A payload that
// cannot be decoded is reported through an error reply; the returned
// error is always nil.
func (d *KittyDispatcher) Handle(cmd *KittyCommand) (string, error) {
	switch cmd.Action {
	case KittyActionDelete:
		d.handleDelete(cmd)
		return "", nil
	case KittyActionQuery:
		return FormatKittyResponse(cmd.ImageID, "OK", false), nil
	default:
		return d.handleTransmit(cmd)
	}
}

func (d *KittyDispatcher) handleTransmit(cmd *KittyCommand) (string, error) {
	payload := cmd.Payload
	if d.accumulator != nil {
		payload = append(d.accumulator, payload...)
	}
	if cmd.More {
		d.accumulator = payload
		d.accumID = cmd.ImageID
		d.accumFormat = cmd.Format
		d.accumWidth = cmd.Width
		d.accumHeight = cmd.Height
		d.accumCompress = cmd.Compression
		return "", nil
	}

	full := *cmd
	full.Payload = payload
	if d.accumulator != nil {
		full.Format = d.accumFormat
		full.Width = d.accumWidth
		full.Height = d.accumHeight
		full.Compression = d.accumCompress
		if full.ImageID == 0 {
			full.ImageID = d.accumID
		}
		d.accumulator = nil
	}

	rgba, w, h, err := full.DecodeImageData()
	if err != nil {
		if cmd.Quiet < 1 {
			return FormatKittyResponse(cmd.ImageID, err.Error(), true), nil
		}
		return "", nil
	}

	id := d.images.Store(w, h, rgba)
	if cmd.ImageID != 0 {
		d.clientToUUID[cmd.ImageID] = id
	}

	if cmd.Action == KittyActionTransmitDisplay {
		d.images.Place(&ImagePlacement{
			ImageID: id,
			Cols:    int(cmd.Cols),
			Rows:    int(cmd.Rows),
			SrcX:    cmd.SrcX, SrcY: cmd.SrcY,
			SrcW: cmd.SrcW, SrcH: cmd.SrcH,
			ZIndex: cmd.ZIndex,
		})
	}

	if cmd.Quiet >= 1 {
		return "", nil
	}
	return FormatKittyResponse(cmd.ImageID, "OK", false), nil
}

func (d *KittyDispatcher) handleDelete(cmd *KittyCommand) {
	switch cmd.Delete {
	case KittyDeleteAll, KittyDeleteAllData:
		for _, p := range d.images.Placements() {
			d.images.RemovePlacement(p.ID)
		}
	case KittyDeleteByID, KittyDeleteByIDData:
		if id, ok := d.clientToUUID[cmd.ImageID]; ok {
			d.images.DeleteImage(id)
			delete(d.clientToUUID, cmd.ImageID)
		}
	}
}
