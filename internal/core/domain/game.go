package domain

// Player is a single roster entry reported by the query protocol.
type Player struct {
	Name string `json:"name"`
}

// GameSnapshot is a point-in-time read of the game server over A2S.
type GameSnapshot struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Players    int      `json:"players"`
	MaxPlayers int      `json:"max_players"`
	Roster     []Player `json:"roster"`
}

// GameResult carries either a snapshot or the reason it is unavailable.
type GameResult struct {
	Snapshot GameSnapshot
	Err      error
}

func (r GameResult) OK() bool { return r.Err == nil }
