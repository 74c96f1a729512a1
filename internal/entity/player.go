package entity

type Player struct {
	ID       string `json:"id"`
	RoomCode string `json:"room_code,omitempty"`
}

func (that *Player) InRoom() bool {
	return that.RoomCode != ""
}
