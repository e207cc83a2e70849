//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

const (
	panelWidth  = 128
	panelHeight = 64
)

type ssd1306Bus struct {
	dev    ssd1306.Device
	width  int
	height int
}

func initSSD1306() (*ssd1306Bus, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		SCL:       pinDisplaySCL,
		SDA:       pinDisplaySDA,
		Frequency: displayI2CFreq,
	}); err != nil {
		return nil, fmt.Errorf("display: i2c: %w", err)
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: displayI2CAddr,
		Width:   panelWidth,
		Height:  panelHeight,
	})
	dev.ClearDisplay()

	return &ssd1306Bus{dev: dev, width: panelWidth, height: panelHeight}, nil
}

func (b *ssd1306Bus) Size() (int, int) { return b.width, b.height }

func (b *ssd1306Bus) Blit(buf []byte) error {
	if len(buf) != b.width*b.height/8 {
		return fmt.Errorf("display: frame is %d bytes, want %d: %w", len(buf), b.width*b.height/8, ErrIOFailure)
	}
	if err := b.dev.SetBuffer(buf); err != nil {
		return fmt.Errorf("display: %w", ErrIOFailure)
	}
	if err := b.dev.Display(); err != nil {
		return fmt.Errorf("display: %w", ErrIOFailure)
	}
	return nil
}
