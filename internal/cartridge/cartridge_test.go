package cartridge

import (
	"testing"

	"github.com/retrogb/gbcore/internal/scheduler"
)

type fakeStore struct {
	saved map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{saved: map[string][]byte{}} }

func (s *fakeStore) Load(path string) ([]byte, error) { return s.saved[path], nil }
func (s *fakeStore) Save(path string, data []byte) error {
	s.saved[path] = append([]byte(nil), data...)
	return nil
}

func romWithBattery() []byte {
	rom := makeROM(8*16*1024, 0x03, 0x02, 0x02) // MBC1, battery, 8KiB RAM
	return rom
}

func TestNewDerivesSavePathFromROMPath(t *testing.T) {
	c, err := New(romWithBattery(), "roms/game.gb", scheduler.New(), newFakeStore())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.savePath != "roms/game.sav" {
		t.Errorf("savePath: got %q, want roms/game.sav", c.savePath)
	}
}

func TestWriteRAMThenCloseFlushesToStore(t *testing.T) {
	store := newFakeStore()
	c, err := New(romWithBattery(), "game.gb", scheduler.New(), store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.WriteROM(0x0000, 0x0A) // unlock RAM
	c.WriteRAM(0x0000, 0x77, 4194304)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	saved := store.saved["game.sav"]
	if len(saved) == 0 || saved[0] != 0x77 {
		t.Errorf("saved data: got %v, want first byte 0x77", saved)
	}
}

func TestSyncFlushesWhenScheduledEventFires(t *testing.T) {
	store := newFakeStore()
	sched := scheduler.New()
	for _, tok := range []scheduler.Token{scheduler.PPU, scheduler.DMA, scheduler.Timer, scheduler.SPU} {
		tok := tok
		sched.RegisterHandler(tok, func() { sched.Schedule(tok, scheduler.Never) })
		sched.Schedule(tok, scheduler.Never)
	}
	c, err := New(romWithBattery(), "game.gb", sched, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// unlock RAM via the mapper's own write-enable command
	c.WriteROM(0x0000, 0x0A)
	c.WriteRAM(0x0000, 0x55, 4194304)

	sched.Tick(FlushSeconds * 4194304)
	sched.Check()

	if _, ok := store.saved["game.sav"]; !ok {
		t.Errorf("expected a flush to have occurred by the scheduled time")
	}
}

func TestLoadSaveRestoresRAMOnConstruction(t *testing.T) {
	store := newFakeStore()
	save := make([]byte, 8*1024)
	save[0], save[1] = 0xAB, 0xCD
	store.saved["game.sav"] = save

	c, err := New(romWithBattery(), "game.gb", scheduler.New(), store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.WriteROM(0x0000, 0x0A)
	if got := c.ReadRAM(0x0000); got != 0xAB {
		t.Errorf("ReadRAM(0x0000) after restore: got 0x%02X, want 0xAB", got)
	}
}
