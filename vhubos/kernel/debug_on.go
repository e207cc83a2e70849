//go:build vhubdebug

package kernel

func debugPanic(msg string) {
	panic(msg)
}
