// Package scripting drives simulation input from Lua scripts.
package scripting

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/domain/input"
)

// ErrNoInputFunc is returned when a script does not define input(frame)
var ErrNoInputFunc = errors.New("script does not define input(frame)")

const inputFunc = "input"

// InputScript wraps a gopher-lua VM whose global input(frame) returns a table
// of pressed buttons. Single-goroutine access only.
//
//	function input(frame)
//	  return {right = true, jump_pressed = frame == 10}
//	end
type InputScript struct {
	vm    *lua.LState
	fn    lua.LValue
	frame int
	log   *zap.Logger
}

// Load reads and runs the script at path
func Load(path string, log *zap.Logger) (*InputScript, error) {
	return newScript(log, func(vm *lua.LState) error { return vm.DoFile(path) })
}

// New runs the script source
func New(source string, log *zap.Logger) (*InputScript, error) {
	return newScript(log, func(vm *lua.LState) error { return vm.DoString(source) })
}

func newScript(log *zap.Logger, run func(*lua.LState) error) (*InputScript, error) {
	if log == nil {
		log = zap.NewNop()
	}

	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := run(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load input script: %w", err)
	}

	fn := vm.GetGlobal(inputFunc)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, ErrNoInputFunc
	}

	return &InputScript{vm: vm, fn: fn, log: log}, nil
}

// Poll implements input.Source. Script errors are logged and read as idle input.
func (s *InputScript) Poll() input.Snapshot {
	frame := s.frame
	s.frame++

	if err := s.vm.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(frame)); err != nil {
		s.log.Error("lua input error", zap.Int("frame", frame), zap.Error(err))
		return input.Snapshot{}
	}

	result := s.vm.Get(-1)
	s.vm.Pop(1)

	t, ok := result.(*lua.LTable)
	if !ok {
		if result != lua.LNil {
			s.log.Warn("lua input returned non-table", zap.Int("frame", frame), zap.String("type", result.Type().String()))
		}
		return input.Snapshot{}
	}

	return input.Snapshot{
		Left:          lua.LVAsBool(t.RawGetString("left")),
		Right:         lua.LVAsBool(t.RawGetString("right")),
		Jump:          lua.LVAsBool(t.RawGetString("jump")),
		JumpPressed:   lua.LVAsBool(t.RawGetString("jump_pressed")),
		AttackPressed: lua.LVAsBool(t.RawGetString("attack_pressed")),
		Axis:          float64(lua.LVAsNumber(t.RawGetString("axis"))),
	}
}

// Frame returns the number of frames polled so far
func (s *InputScript) Frame() int {
	return s.frame
}

// Close releases the Lua VM
func (s *InputScript) Close() {
	s.vm.Close()
}
