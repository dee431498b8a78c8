package types

// Reducer actions. Types without a lower-case letter are applied directly
// to the session state.
const (
	ActionMenuHide    = "MENUHIDE"
	ActionMenuShow    = "MENUSHOW"
	ActionDeskShow    = "DESKSHOW"
	ActionDeskHide    = "DESKHIDE"
	ActionDeskToggle  = "DESKTOGG"
	ActionDeskSize    = "DESKSIZE"
	ActionDeskSort    = "DESKSORT"
	ActionDeskAdd     = "DESKADD"
	ActionDeskRemove  = "DESKREM"
	ActionTheme       = "STNGTHEME"
	ActionSetToggle   = "STNGTOGG"
	ActionSetValue    = "STNGSETV"
	ActionWallSet     = "WALLSET"
	ActionWallNext    = "WALLNEXT"
	ActionTaskCenter  = "TASKCEN"
	ActionTaskLeft    = "TASKLEF"
	ActionTaskToggle  = "TASKTOGG"
	ActionStartShow   = "STARTSHW"
	ActionStartHide   = "STARTHID"
	ActionStartToggle = "STARTOGG"
	ActionStartAlpha  = "STARTALPHA"
	ActionPaneTheme   = "PANETHEM"
)

var reducerActions = map[string]bool{
	ActionMenuHide: true, ActionMenuShow: true,
	ActionDeskShow: true, ActionDeskHide: true, ActionDeskToggle: true,
	ActionDeskSize: true, ActionDeskSort: true, ActionDeskAdd: true, ActionDeskRemove: true,
	ActionTheme: true, ActionSetToggle: true, ActionSetValue: true,
	ActionWallSet: true, ActionWallNext: true,
	ActionTaskCenter: true, ActionTaskLeft: true, ActionTaskToggle: true,
	ActionStartShow: true, ActionStartHide: true, ActionStartToggle: true, ActionStartAlpha: true,
	ActionPaneTheme: true,
}

// IsReducerAction reports whether action names a reducer
func IsReducerAction(action string) bool {
	return reducerActions[action]
}

// ReducerActions returns the number of reducer actions
func ReducerActions() int {
	return len(reducerActions)
}

// Named handlers. Types with a lower-case letter resolve to one of these.
const (
	HandlerChangeTheme     = "changeTheme"
	HandlerChangeSort      = "changeSort"
	HandlerChangeIconSize  = "changeIconSize"
	HandlerChangeTaskAlign = "changeTaskAlign"
	HandlerDeskHide        = "deskHide"
	HandlerRefresh         = "refresh"
	HandlerInstallApp      = "installApp"
	HandlerDelApp          = "delApp"
	HandlerDelShort        = "delShort"
	HandlerPerformApp      = "performApp"
)

// performApp payloads
const (
	PerformOpen  = "open"
	PerformPin   = "pin"
	PerformUnpin = "unpin"
)
