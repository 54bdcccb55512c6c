//go:build !unix && !windows

package jit

func allocWritable(size int) ([]byte, error) {
	return nil, ErrExecutableMemory
}

func protectExecutable(mem []byte) error {
	return ErrExecutableMemory
}

func freeExecutable(mem []byte) error {
	return nil
}
