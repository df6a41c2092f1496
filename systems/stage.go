package systems

import (
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateStage returns the system that routes this frame's input into st
// and advances it by one tick. It must run after UpdateInput.
func NewUpdateStage(st *stage.Stage) ecs.System {
	return func(e *ecs.ECS) {
		input := getOrCreateInput(e)
		settings := GetOrCreateSettings(e)

		if GetAction(input, cfg.ActionToggleFollow).JustPressed {
			settings.Follow = !settings.Follow
			st.SetFollow(settings.Follow)
			SaveCurrentSettings(settings)
		}
		if input.PointerMoved {
			st.PointerMoved(input.PointerX, input.PointerY)
		}
		if input.ScrollChanged {
			st.Scrolled(input.ScrollProgress)
		}

		st.Tick(1 / float64(ebiten.TPS()))
	}
}
