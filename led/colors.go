package led

// ModeColors holds the solid mode-indicator color for each of the five
// mode ordinals, indexed the same way as mode.Mode.
var ModeColors = [5]RGB{
	{R: 0, G: 255, B: 0},   // gate
	{R: 0, G: 128, B: 255}, // trigger
	{R: 255, G: 64, B: 0},  // toggle
	{R: 255, G: 0, B: 255}, // divide
	{R: 255, G: 255, B: 0}, // cycle
}

// White is the color used for menu pages not associated with a single
// mode (global settings).
var White = RGB{R: 255, G: 255, B: 255}
