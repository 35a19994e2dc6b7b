package components

import "github.com/yohamta/donburi"

type PlayerData struct {
	Speed float64
	// Last non-zero movement direction
	FacingX float64
	FacingY float64
}

var Player = donburi.NewComponentType[PlayerData]()
