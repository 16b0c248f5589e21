package domain

const bytesPerMegabyte = 1024 * 1024

// Convert reports byte values in megabytes; other units pass through.
func Convert(value float64, unit string) float64 {
	if unit == "B" {
		return value / bytesPerMegabyte
	}
	return value
}
