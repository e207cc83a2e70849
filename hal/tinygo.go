//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Board wiring (ESP32 devkit profile). Configuration data, not logic.
const (
	pinDisplaySCL = machine.Pin(19)
	pinDisplaySDA = machine.Pin(21)
	pinBtnScroll  = machine.Pin(25)
	pinBtnSelect  = machine.Pin(26)
	pinBoardLED   = machine.Pin(2)

	displayI2CAddr  = 0x3C
	displayI2CFreq  = 400_000
	uartConsoleBaud = 115200
)

type tinyGoHAL struct {
	logger  *uartLogger
	led     *pinLED
	bus     DisplayBus
	buttons []GPIOPin
	t       *tinyGoTime
}

// New returns the on-device HAL implementation.
//
// UART: UART0 at 115200 8N1. Display: SSD1306 over I2C0.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: uartConsoleBaud})

	ledPin := pinBoardLED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: uart}

	bus, err := initSSD1306()
	if err != nil {
		logger.WriteLineString("display: " + err.Error())
		bus = nullDisplayBus{}
	}

	return &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		bus:    bus,
		buttons: []GPIOPin{
			newMachinePin("BTN_SCROLL", pinBtnScroll),
			newMachinePin("BTN_SELECT", pinBtnSelect),
		},
		t: newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHAL) LED() LED               { return h.led }
func (h *tinyGoHAL) DisplayBus() DisplayBus { return h.bus }
func (h *tinyGoHAL) Buttons() []GPIOPin     { return h.buttons }
func (h *tinyGoHAL) Time() Time             { return h.t }

type nullDisplayBus struct{}

func (nullDisplayBus) Size() (int, int)      { return 0, 0 }
func (nullDisplayBus) Blit(buf []byte) error { return ErrNotImplemented }
