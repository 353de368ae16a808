package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin     = "join"
	MsgLeave    = "leave"
	MsgInput    = "input"
	MsgCreate   = "create" // create session
	MsgList     = "list"   // list sessions
	MsgCheck    = "check"  // check if session exists
	MsgRegister = "register"
	MsgLogin    = "login"
	MsgAuth     = "auth" // token re-auth
	MsgProfile  = "profile"
)

// Server -> Client message types
const (
	MsgWelcome     = "welcome"
	MsgDeath       = "death"
	MsgKill        = "kill"
	MsgSessions    = "sessions"
	MsgJoined      = "joined"
	MsgCreated     = "created"
	MsgChecked     = "checked"
	MsgError       = "error"
	MsgAuthOK      = "auth_ok"
	MsgProfileData = "profile_data"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is the five-intent structure delivered per human. Each
// delivery replaces the previous intent wholesale.
type ClientInput struct {
	Up    bool `json:"u"`
	Down  bool `json:"d"`
	Left  bool `json:"l"`
	Right bool `json:"r"`
	Fire  bool `json:"f"`
}

// ToInput converts the wire structure to the engine intent
func (in ClientInput) ToInput() InputState {
	return InputState{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right, Fire: in.Fire}
}

// JoinMsg is sent when a player wants to join a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a player wants to create a session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
	Mode        int    `json:"mode"`
}

// TankState is broadcast per tank each tick. Lives is -1 for unbounded;
// Shielded is the derived boolean, never the raw countdown.
type TankState struct {
	ID       string  `json:"id"`
	Name     string  `json:"n"`
	Kind     int     `json:"k"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Dir      int     `json:"dir"`
	Alive    bool    `json:"a"`
	Lives    int     `json:"lv"`
	Score    int     `json:"sc"`
	Deaths   int     `json:"dt"`
	Color    int     `json:"c"`
	Shielded bool    `json:"sh"`
	Moving   bool    `json:"mv"`
}

// ProjectileState is broadcast per projectile
type ProjectileState struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Dir  int     `json:"dir"`
	Kind int     `json:"k"`
}

// PowerupState is broadcast per power-up drop
type PowerupState struct {
	ID   string  `json:"id"`
	Kind int     `json:"k"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// GameState is the full snapshot broadcast every tick
type GameState struct {
	Mode        int               `json:"mode"`
	Tick        uint64            `json:"tick"`
	Grid        [][]uint8         `json:"g"`
	Tanks       []TankState       `json:"tk"`
	Projectiles []ProjectileState `json:"pr"`
	Powerups    []PowerupState    `json:"pu,omitempty"`
	Over        bool              `json:"over"`
	Winner      string            `json:"w,omitempty"`
	WinnerName  string            `json:"wn,omitempty"`
	FragTarget  int               `json:"ft,omitempty"`
	EnemiesLeft int               `json:"el"`
	EnemiesOn   int               `json:"eo"`
}

// WelcomeMsg is sent to a player when they join
type WelcomeMsg struct {
	ID    string `json:"id"`
	Color int    `json:"c"`
	Mode  int    `json:"mode"`
}

// DeathMsg notifies a player they were eliminated
type DeathMsg struct {
	KillerID   string `json:"kid"`
	KillerName string `json:"kn"`
}

// KillMsg is broadcast to all players in a session
type KillMsg struct {
	KillerID   string `json:"kid"`
	KillerName string `json:"kn"`
	VictimID   string `json:"vid"`
	VictimName string `json:"vn"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mode    int    `json:"mode"`
	Players int    `json:"players"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// CheckMsg is sent by a client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID     string `json:"sid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Mode    int    `json:"mode,omitempty"`
	Players int    `json:"players,omitempty"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// LoginMsg authenticates by password
type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// AuthMsg re-authenticates by token
type AuthMsg struct {
	Token string `json:"tok"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"tok"`
	Username string `json:"u"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg returns persisted stats for the authenticated player
type ProfileDataMsg struct {
	Username string `json:"u"`
	Kills    int    `json:"k"`
	Deaths   int    `json:"d"`
	Wins     int    `json:"w"`
	Matches  int    `json:"m"`
}
