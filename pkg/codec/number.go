package codec

import (
	"encoding/binary"
	"unsafe"
)

// Number is the set of scalar kinds a field may hold. Platform sized
// integers (int, uint, uintptr) are left out so that a schema has the same
// width on every host.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// SizeOf returns the storage size of T in bytes.
func SizeOf[T Number]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// putNative writes the in-memory image of v to dst.
func putNative[T Number](dst []byte, v T) {
	copy(dst, unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
}

// native reads a T from the in-memory image in src.
func native[T Number](src []byte) T {
	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), src)
	return v
}

// NativeOrder returns the byte order the host uses for the values this
// package copies.
func NativeOrder() binary.ByteOrder {
	var probe [2]byte
	putNative(probe[:], uint16(0x0102))
	if probe[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
