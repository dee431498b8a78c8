package session

import (
	"strings"
	"unicode"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// Kind classifies a parsed intent
type Kind int

const (
	KindNone Kind = iota
	KindAction
	KindHandler
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindHandler:
		return "handler"
	default:
		return "none"
	}
}

// HandlerName is a member of the closed handler set
type HandlerName string

// Valid reports whether h is a known handler
func (h HandlerName) Valid() bool {
	switch h {
	case types.HandlerChangeTheme,
		types.HandlerChangeSort,
		types.HandlerChangeIconSize,
		types.HandlerChangeTaskAlign,
		types.HandlerDeskHide,
		types.HandlerRefresh,
		types.HandlerInstallApp,
		types.HandlerDelApp,
		types.HandlerDelShort,
		types.HandlerPerformApp:
		return true
	}
	return false
}

// Command is a parsed intent
type Command struct {
	Kind    Kind
	Action  string
	Handler HandlerName
	Payload *string
	Reason  string // why a KindNone command is ignored
}

// Parse classifies an intent. Malformed intents and unknown handler names
// parse to KindNone.
func Parse(in types.Intent) Command {
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return Command{Kind: KindNone, Reason: "empty type"}
	}
	if err := utils.ValidateIntentType(typ); err != nil {
		return Command{Kind: KindNone, Reason: "malformed type"}
	}
	if err := utils.ValidatePayload(in.Payload); err != nil {
		return Command{Kind: KindNone, Reason: "payload too large"}
	}

	if strings.IndexFunc(typ, unicode.IsLower) < 0 {
		return Command{Kind: KindAction, Action: typ, Payload: in.Payload}
	}

	h := HandlerName(typ)
	if !h.Valid() {
		return Command{Kind: KindNone, Reason: "unknown handler"}
	}
	return Command{Kind: KindHandler, Handler: h, Payload: in.Payload}
}

func payloadString(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
