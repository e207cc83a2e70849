package app

import (
	"fmt"
	"strings"

	"vhub/hal"
	"vhub/vhubos/drivers/display"
	"vhub/vhubos/kernel"
)

func installPanicHandler(h hal.HAL, disp *display.Driver) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("vhub panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}

		if disp == nil {
			select {}
		}

		lines := []string{
			"vhub panic",
			fmt.Sprintf("task: %d", info.TaskID),
			fmt.Sprintf("panic: %v", info.Value),
		}
		if len(info.Stack) == 0 {
			lines = append(lines, "stack: unavailable")
		}

		disp.Fill(false)

		const lineHeight = 10
		cols := panicCols(disp)
		y := lineHeight
		for _, line := range lines {
			for len(line) > 0 {
				if y > disp.Height() {
					break
				}
				chunk, rest := splitCols(line, cols)
				disp.WriteLine(nil, 0, y, chunk)
				y += lineHeight
				line = strings.TrimLeft(rest, " ")
			}
		}

		_ = disp.Present(nil)
		select {}
	})
}

func panicCols(disp *display.Driver) int {
	w := disp.LineWidth(nil, "0")
	if w <= 0 {
		return 1
	}
	cols := disp.Width() / w
	if cols <= 0 {
		cols = 1
	}
	return cols
}

func splitCols(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], s[i:]
		}
		count++
	}
	return s, ""
}
