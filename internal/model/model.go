package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels lists every table of the interaction journal, in migration order.
var DatabaseModels = []interface{}{
	&Session{},
	&Interaction{},
	&TyreSlash{},
	&PluginPerformance{},
}

// Session is one load of the plugin inside the game process.
type Session struct {
	ID               uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	UUID             string         `json:"uuid" gorm:"size:36;uniqueIndex:idx_session_uuid"`
	StartTime        time.Time      `json:"startTime"`
	EndTime          sql.NullTime   `json:"endTime" gorm:"default:NULL"`
	ExtensionVersion string         `json:"extensionVersion" gorm:"size:64"`
	Character        string         `json:"character" gorm:"size:64"`
	PropsFile        string         `json:"propsFile" gorm:"size:255"`
	PropsLoaded      int            `json:"propsLoaded"`
	Settings         datatypes.JSON `json:"settings" gorm:"default:'{}'"`
}

func (*Session) TableName() string {
	return "sessions"
}

// Interaction is a prop action fired by the player.
type Interaction struct {
	ID            uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time          time.Time      `json:"time" gorm:"index:idx_interaction_time"`
	SessionID     uint           `json:"sessionId" gorm:"index:idx_interaction_session_id"`
	Session       Session        `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Tick          uint64         `json:"tick"`
	ModelName     string         `json:"modelName" gorm:"size:127;index:idx_interaction_model"`
	Action        string         `json:"action" gorm:"size:32"`
	Control       uint16         `json:"control"`
	Accessibility uint32         `json:"accessibility"`
	Position      geom.Point     `json:"position"`
	Offsets       datatypes.JSON `json:"offsets" gorm:"default:'[]'"`
}

func (*Interaction) TableName() string {
	return "interactions"
}

// TyreSlash is a tyre burst by the player.
type TyreSlash struct {
	ID           uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	Time         time.Time  `json:"time" gorm:"index:idx_tyreslash_time"`
	SessionID    uint       `json:"sessionId" gorm:"index:idx_tyreslash_session_id"`
	Session      Session    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Tick         uint64     `json:"tick"`
	VehicleModel string     `json:"vehicleModel" gorm:"size:64"`
	Tyre         int        `json:"tyre"`
	Position     geom.Point `json:"position"`
}

func (*TyreSlash) TableName() string {
	return "tyre_slashes"
}

// PluginPerformance is a periodic health sample of the plugin.
type PluginPerformance struct {
	Time              time.Time `json:"time" gorm:"index:idx_perf_time"`
	SessionID         uint      `json:"sessionId" gorm:"index:idx_perf_session_id"`
	Session           Session   `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Ticks             uint64    `json:"ticks"`
	PropsLoaded       int       `json:"propsLoaded"`
	LastTickMs        float32   `json:"lastTickMs"`
	ActionsDispatched uint64    `json:"actionsDispatched"`
	TyresSlashed      uint64    `json:"tyresSlashed"`
	PendingTasks      int       `json:"pendingTasks"`
}

func (*PluginPerformance) TableName() string {
	return "plugin_performances"
}
