package replay

import (
	"encoding/binary"
	"io"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// Button bits packed into a Command
const (
	BtnHeld uint8 = 1 << iota
	BtnPressed
	BtnReload
	BtnSwitch
)

// Command is one entity's control input on one tick. A recorded
// session is just the stream of these plus the world seed.
type Command struct {
	Tick    uint64
	Entity  core.EntityID
	AimX    float64
	AimY    float64
	Buttons uint8
	// MoveX, MoveY is quantized movement intent (-1, 0 or 1 per axis)
	// for hosts that move the controlled entity.
	MoveX, MoveY int8
}

// Capture snapshots an entity's fire control as a command
func Capture(tick uint64, id core.EntityID, ctrl *core.FireControl) Command {
	c := Command{Tick: tick, Entity: id, AimX: ctrl.AimX, AimY: ctrl.AimY}
	if ctrl.Held {
		c.Buttons |= BtnHeld
	}
	if ctrl.Pressed {
		c.Buttons |= BtnPressed
	}
	if ctrl.ReloadPressed {
		c.Buttons |= BtnReload
	}
	if ctrl.SwitchPressed {
		c.Buttons |= BtnSwitch
	}
	return c
}

// Apply writes the command back onto a fire control
func (c *Command) Apply(ctrl *core.FireControl) {
	ctrl.AimX = c.AimX
	ctrl.AimY = c.AimY
	ctrl.Held = c.Buttons&BtnHeld != 0
	ctrl.Pressed = c.Buttons&BtnPressed != 0
	ctrl.ReloadPressed = c.Buttons&BtnReload != 0
	ctrl.SwitchPressed = c.Buttons&BtnSwitch != 0
}

// Encode writes a command to binary
func (c *Command) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(c.Entity)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.AimX); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.AimY); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Buttons); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.MoveX); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.MoveY)
}

// Decode reads a command from binary
func (c *Command) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	var ent uint64
	if err := binary.Read(r, binary.LittleEndian, &ent); err != nil {
		return err
	}
	c.Entity = core.EntityID(ent)
	if err := binary.Read(r, binary.LittleEndian, &c.AimX); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.AimY); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Buttons); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.MoveX); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &c.MoveY)
}
