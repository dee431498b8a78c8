package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		intent  types.Intent
		kind    Kind
		handler HandlerName
		action  string
	}{
		{name: "empty", intent: types.Intent{}, kind: KindNone},
		{name: "blank", intent: types.NewIntent("   "), kind: KindNone},
		{name: "reducer", intent: types.NewIntent("MENUHIDE"), kind: KindAction, action: "MENUHIDE"},
		{name: "launcher", intent: types.NewIntent("APP_01HZX", "full"), kind: KindAction, action: "APP_01HZX"},
		{name: "digits only", intent: types.NewIntent("123"), kind: KindAction, action: "123"},
		{name: "handler", intent: types.NewIntent("changeTheme"), kind: KindHandler, handler: "changeTheme"},
		{name: "unknown handler", intent: types.NewIntent("formatDisk"), kind: KindNone},
		{name: "case matters", intent: types.NewIntent("ChangeTheme"), kind: KindNone},
		{name: "malformed", intent: types.NewIntent("DESK SHOW"), kind: KindNone},
		{name: "huge payload", intent: types.NewIntent("DESKSIZE", strings.Repeat("x", 1<<15)), kind: KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.intent)
			assert.Equal(t, tt.kind, cmd.Kind)
			assert.Equal(t, tt.handler, cmd.Handler)
			assert.Equal(t, tt.action, cmd.Action)
			if cmd.Kind == KindNone {
				assert.NotEmpty(t, cmd.Reason)
			}
		})
	}
}

func TestHandlerNamesAreClosed(t *testing.T) {
	m := newTestSession(t)
	for name := range m.handlers {
		assert.True(t, name.Valid(), name)
	}
	for _, name := range []string{
		types.HandlerChangeTheme, types.HandlerChangeSort, types.HandlerChangeIconSize,
		types.HandlerChangeTaskAlign, types.HandlerDeskHide, types.HandlerRefresh,
		types.HandlerInstallApp, types.HandlerDelApp, types.HandlerDelShort, types.HandlerPerformApp,
	} {
		_, ok := m.handlers[HandlerName(name)]
		assert.True(t, ok, name)
	}
	assert.False(t, HandlerName("constructor").Valid())
}
