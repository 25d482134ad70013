// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-orbital/pkg/entity"
)

func TestKeyboard_Control(t *testing.T) {
	tests := []struct {
		name    string
		buttons fakeButtons
		want    entity.ShipControl
	}{
		{"nothing", fakeButtons{}, entity.ShipControl{}},
		{"left", fakeButtons{ButtonLeft: true}, entity.ShipControl{Left: true}},
		{"right", fakeButtons{ButtonRight: true}, entity.ShipControl{Right: true}},
		{"thrust", fakeButtons{ButtonThrust: true}, entity.ShipControl{Left: true, Right: true}},
		{"retro and bomb", fakeButtons{ButtonRetro: true, ButtonBomb: true}, entity.ShipControl{Retro: true, DropBomb: true}},
		{"zoom keys ignored", fakeButtons{ButtonZoomIn: true}, entity.ShipControl{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := &Keyboard{pressed: tt.buttons.pressed}
			if got := k.Control(); got != tt.want {
				t.Errorf("Control() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
