package services

// placeholderImages is the fixed pool substituted when image generation or
// upload fails for a step. Selection is deterministic per step index so
// repeated runs produce identical output.
var placeholderImages = []string{
	"https://images.pexels.com/photos/1648377/pexels-photo-1648377.jpeg",
	"https://images.pexels.com/photos/1866149/pexels-photo-1866149.jpeg",
	"https://images.pexels.com/photos/2251247/pexels-photo-2251247.jpeg",
	"https://images.pexels.com/photos/1090638/pexels-photo-1090638.jpeg",
	"https://images.pexels.com/photos/1571459/pexels-photo-1571459.jpeg",
}

// PlaceholderImage returns the pool entry for a zero-based step index.
func PlaceholderImage(stepIndex int) string {
	if stepIndex < 0 {
		stepIndex = -stepIndex
	}
	return placeholderImages[stepIndex%len(placeholderImages)]
}
