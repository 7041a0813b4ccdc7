package util

// Percent returns part/total*100. A non-positive total yields 0 and ok=false.
func Percent(part, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return float64(part) / float64(total) * 100, true
}
