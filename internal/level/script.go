package level

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// scriptTimeout bounds a single script run.
const scriptTimeout = 2 * time.Second

// ScriptBuilder builds a level by running a Lua script.
//
// The script may set the globals title, width and height, and must define
// build(level). level carries index, width, height and ground_row. The
// builder exposes ground, ground_span, block, pipe, enemy, goal, finish,
// rand and randint; rand draws from the builder's seeded source.
type ScriptBuilder struct {
	id     string
	title  string
	source string
}

// NewScriptBuilder loads a script once to check it and read its title.
func NewScriptBuilder(id, source string) (*ScriptBuilder, error) {
	L, cancel, err := newSandbox()
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer L.Close()

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("level: script %s: %w", id, err)
	}
	if L.GetGlobal("build").Type() != lua.LTFunction {
		return nil, fmt.Errorf("level: script %s: no build function", id)
	}

	title := id
	if s, ok := L.GetGlobal("title").(lua.LString); ok && s != "" {
		title = string(s)
	}
	return &ScriptBuilder{id: id, title: title, source: source}, nil
}

// ID implements Builder.
func (b *ScriptBuilder) ID() string { return b.id }

// Title implements Builder.
func (b *ScriptBuilder) Title() string { return b.title }

// Build implements Builder.
func (b *ScriptBuilder) Build(cfg *config.PlatformerConfig, index int, rng *rand.Rand) (*sim.World, error) {
	L, cancel, err := newSandbox()
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer L.Close()

	if err := L.DoString(b.source); err != nil {
		return nil, fmt.Errorf("level: script %s: %w", b.id, err)
	}

	cols, rows := cfg.Generator.Length, cfg.World.Rows
	if n, ok := L.GetGlobal("width").(lua.LNumber); ok {
		cols = int(n)
	}
	if n, ok := L.GetGlobal("height").(lua.LNumber); ok {
		rows = int(n)
	}

	w, err := sim.NewWorld(cfg, index, cols, rows, rng.Int63())
	if err != nil {
		return nil, fmt.Errorf("level: script %s: %w", b.id, err)
	}

	api := &scriptAPI{w: w, rng: rng, groundRow: cfg.Generator.GroundRow}
	api.install(L)

	lvl := L.NewTable()
	lvl.RawSetString("index", lua.LNumber(index))
	lvl.RawSetString("width", lua.LNumber(cols))
	lvl.RawSetString("height", lua.LNumber(rows))
	lvl.RawSetString("ground_row", lua.LNumber(api.groundRow))

	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal("build"),
		NRet:    0,
		Protect: true,
	}, lvl); err != nil {
		return nil, fmt.Errorf("level: script %s: %w", b.id, err)
	}

	if w.Goal == nil {
		return nil, fmt.Errorf("level: script %s: no goal placed", b.id)
	}
	return w, nil
}

// newSandbox creates a VM with only the base, table, string and math libraries.
func newSandbox() (*lua.LState, context.CancelFunc, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, nil, fmt.Errorf("level: open lua %s: %w", lib.name, err)
		}
	}
	// Scripts must not load files or reach the host.
	for _, name := range []string{"dofile", "loadfile", "require", "load"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	L.SetContext(ctx)
	return L, cancel, nil
}

// scriptAPI binds the Lua level functions to one world under construction.
type scriptAPI struct {
	w         *sim.World
	rng       *rand.Rand
	groundRow int
}

func (a *scriptAPI) install(L *lua.LState) {
	fns := map[string]lua.LGFunction{
		"ground":      a.ground,
		"ground_span": a.groundSpan,
		"block":       a.block,
		"pipe":        a.pipe,
		"enemy":       a.enemy,
		"goal":        a.goal,
		"finish":      a.finish,
		"rand":        a.rand,
		"randint":     a.randint,
	}
	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

func (a *scriptAPI) ground(L *lua.LState) int {
	c := L.CheckInt(1)
	if err := addGround(a.w, c, groundRows(a.groundRow, a.w.Rows())); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) groundSpan(L *lua.LState) int {
	c0, c1 := L.CheckInt(1), L.CheckInt(2)
	rows := groundRows(a.groundRow, a.w.Rows())
	for c := c0; c <= c1; c++ {
		if err := addGround(a.w, c, rows); err != nil {
			return raise(L, err)
		}
	}
	return 0
}

func (a *scriptAPI) block(L *lua.LState) int {
	c, r := L.CheckInt(1), L.CheckInt(2)
	t, err := sim.ParseBlockType(L.CheckString(3))
	if err != nil {
		return raise(L, err)
	}
	if err := a.w.AddBlock(c, r, t); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) pipe(L *lua.LState) int {
	c, h := L.CheckInt(1), L.CheckInt(2)
	if h <= 0 {
		return raise(L, errors.New("pipe height must be positive"))
	}
	if err := addPipe(a.w, c, a.groundRow-1, h); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) enemy(L *lua.LState) int {
	if err := a.w.AddEnemy(L.CheckInt(1), L.CheckInt(2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) goal(L *lua.LState) int {
	if err := a.w.SetGoal(L.CheckInt(1), L.CheckInt(2)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) finish(L *lua.LState) int {
	if err := a.w.SetEndColumn(L.CheckInt(1)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (a *scriptAPI) rand(L *lua.LState) int {
	L.Push(lua.LNumber(a.rng.Float64()))
	return 1
}

func (a *scriptAPI) randint(L *lua.LState) int {
	lo, hi := L.CheckInt(1), L.CheckInt(2)
	if hi < lo {
		L.ArgError(2, "upper bound below lower bound")
		return 0
	}
	L.Push(lua.LNumber(lo + a.rng.Intn(hi-lo+1)))
	return 1
}
