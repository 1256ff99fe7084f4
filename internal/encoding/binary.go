package encoding

// labelOffset shifts labels so the negative sentinels (border, outside)
// pack into unsigned values.
const labelOffset = 2

// Split32 uint32 to two uint16
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// PackLabel turns a raster label (>= -2) into two uint16 suitable for
// stashing in two 16 bit image channels.
func PackLabel(label int) (uint16, uint16) {
	return Split32(uint32(label + labelOffset))
}

// UnpackLabel reverses PackLabel
func UnpackLabel(hi, lo uint16) int {
	return int(Merge16(hi, lo)) - labelOffset
}
