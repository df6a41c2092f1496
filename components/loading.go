package components

import "github.com/yohamta/donburi"

// LoadProgressData tracks the asset load. Fraction never decreases and
// exactly one of Complete or Failed becomes true.
type LoadProgressData struct {
	ItemsLoaded int
	ItemsTotal  int
	Fraction    float64
	Complete    bool
	Failed      bool
	Err         error
}

var LoadProgress = donburi.NewComponentType[LoadProgressData]()
