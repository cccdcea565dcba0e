package vtcore

import (
	"encoding/base64"
	"testing"
)

func TestParseKittyGraphicsControlKeys(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4})
	cmd, err := ParseKittyGraphics([]byte("Ga=T,f=32,s=1,v=1,i=7;" + payload))
	if err != nil {
		t.Fatalf("ParseKittyGraphics error: %v", err)
	}
	if cmd.Action != KittyActionTransmitDisplay {
		t.Errorf("Action = %c, want T", cmd.Action)
	}
	if cmd.Format != KittyFormatRGBA {
		t.Errorf("Format = %d, want RGBA (32)", cmd.Format)
	}
	if cmd.Width != 1 || cmd.Height != 1 {
		t.Errorf("dims = (%d,%d), want (1,1)", cmd.Width, cmd.Height)
	}
	if cmd.ImageID != 7 {
		t.Errorf("ImageID = %d, want 7", cmd.ImageID)
	}
	if len(cmd.Payload) != 4 {
		t.Fatalf("Payload = %v, want 4 decoded bytes", cmd.Payload)
	}
}

func TestParseKittyGraphicsDeleteCommand(t *testing.T) {
	cmd, err := ParseKittyGraphics([]byte("Ga=d,d=i,i=3"))
	if err != nil {
		t.Fatalf("ParseKittyGraphics error: %v", err)
	}
	if cmd.Action != KittyActionDelete {
		t.Errorf("Action = %c, want d", cmd.Action)
	}
	if cmd.Delete != KittyDeleteByID {
		t.Errorf("Delete = %c, want i", cmd.Delete)
	}
	if cmd.ImageID != 3 {
		t.Errorf("ImageID = %d, want 3", cmd.ImageID)
	}
}

func TestKittyDispatcherTransmitAndDisplay(t *testing.T) {
	m := NewImageManager()
	d := NewKittyDispatcher(m)

	payload := base64.StdEncoding.EncodeToString([]byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
	})
	cmd, err := ParseKittyGraphics([]byte("Ga=T,f=32,s=2,v=1,i=1;" + payload))
	if err != nil {
		t.Fatalf("ParseKittyGraphics error: %v", err)
	}
	if _, err := d.Handle(cmd); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if len(m.Placements()) != 1 {
		t.Errorf("Placements() = %d, want 1 after transmit+display", len(m.Placements()))
	}
}

func TestKittyDispatcherDelete(t *testing.T) {
	m := NewImageManager()
	d := NewKittyDispatcher(m)
	payload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4})
	cmd, _ := ParseKittyGraphics([]byte("Ga=T,f=32,s=1,v=1,i=5;" + payload))
	d.Handle(cmd)

	del, _ := ParseKittyGraphics([]byte("Ga=d,d=I,i=5"))
	d.Handle(del)

	if len(m.Placements()) != 0 {
		t.Errorf("Placements() = %d, want 0 after delete", len(m.Placements()))
	}
}

func TestFormatKittyResponse(t *testing.T) {
	resp := FormatKittyResponse(42, "OK", false)
	if resp != "\x1b_Gi=42;OK\x1b\\" {
		t.Errorf("FormatKittyResponse() = %q", resp)
	}
}
