package savefile

// Lua hook for poking at saves after a run. Scripts only get read access.

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	lua "github.com/yuin/gopher-lua"
)

// Tracking for a single script run
type ScriptState struct {
	FileDirectory string
	Arguments     []string
	Logs          strings.Builder
}

// Get full path to given file requested by the script, relative to the
// configured directory if there is one
func (state *ScriptState) FilePath(path string) string {
	if state.FileDirectory == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(state.FileDirectory, path)
}

// Add a function to the given lua state that actually tracks with our own state.
// Usually lua functions don't accept extra go parameters
func (state *ScriptState) AddFunction(name string, f func(*lua.LState, *ScriptState) int, L *lua.LState) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int { return f(L, state) }))
}

func luaArguments(L *lua.LState, state *ScriptState) int {
	for _, a := range state.Arguments {
		L.Push(lua.LString(a))
	}
	return len(state.Arguments)
}

// Like print, but everything goes into the returned logs
func luaLog(L *lua.LState, state *ScriptState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	state.Logs.WriteString(strings.Join(parts, "\t"))
	state.Logs.WriteString("\n")
	return 0
}

// Checksum of a raw string, same as a chunk payload would get
func luaChecksum(L *lua.LState, state *ScriptState) int {
	payload := L.CheckString(1)
	L.Push(lua.LNumber(ComputeChecksum([]byte(payload))))
	return 1
}

// Read a save and list its chunks. Second argument is force mode.
func luaScan(L *lua.LState, state *ScriptState) int {
	path := state.FilePath(L.CheckString(1))
	config := Config{Force: L.OptBool(2, false)}
	data, err := os.ReadFile(path)
	if err != nil {
		L.RaiseError("Couldn't read save %s: %s", path, err)
		return 0
	}
	if !config.Force && len(data) > MaxSaveSize {
		L.RaiseError("%s: %s", path, ErrSizeLimit)
		return 0
	}
	chunks, err := Scan(data, config)
	if err != nil {
		L.RaiseError("Couldn't scan save %s: %s", path, err)
		return 0
	}
	result := L.CreateTable(len(chunks), 0)
	for _, c := range chunks {
		entry := L.CreateTable(0, 6)
		entry.RawSetString("offset", lua.LNumber(c.Offset))
		entry.RawSetString("payload_offset", lua.LNumber(c.PayloadOffset()))
		entry.RawSetString("length", lua.LNumber(c.Length))
		entry.RawSetString("stored", lua.LNumber(c.StoredChecksum))
		entry.RawSetString("computed", lua.LNumber(c.Checksum))
		entry.RawSetString("ok", lua.LBool(c.IsValid()))
		result.Append(entry)
	}
	L.Push(result)
	return 1
}

func luaHex(L *lua.LState) int {
	raw, err := hex.DecodeString(L.CheckString(1))
	if err != nil {
		L.RaiseError("Error decoding hex in lua script: %s", err)
		return 0
	}
	L.Push(lua.LString(string(raw)))
	return 1
}

func luaToml(L *lua.LState) int {
	tree, err := toml.Load(L.CheckString(1))
	if err != nil {
		L.RaiseError("Couldn't parse toml: %s", err)
		return 0
	}
	L.Push(luaDecodeValue(L, tree.ToMap()))
	return 1
}

// Converts the plain values a toml tree decodes to into lua values. Anything
// else turns into nil.
// Taken from https://github.com/layeh/gopher-json (json cases dropped)
func luaDecodeValue(L *lua.LState, value interface{}) lua.LValue {
	switch converted := value.(type) {
	case bool:
		return lua.LBool(converted)
	case float64:
		return lua.LNumber(converted)
	case int64:
		return lua.LNumber(converted)
	case string:
		return lua.LString(converted)
	case []interface{}:
		arr := L.CreateTable(len(converted), 0)
		for _, item := range converted {
			arr.Append(luaDecodeValue(L, item))
		}
		return arr
	case map[string]interface{}:
		tbl := L.CreateTable(0, len(converted))
		for key, item := range converted {
			tbl.RawSetH(lua.LString(key), luaDecodeValue(L, item))
		}
		return tbl
	}
	return lua.LNil
}

// Run the given script with the given arguments, returning whatever it logged.
// Relative paths in scan() are resolved against dir.
func RunLuaSaveScript(script string, arguments []string, dir string) (string, error) {
	state := ScriptState{
		FileDirectory: dir,
		Arguments:     arguments,
	}

	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("hex", L.NewFunction(luaHex))
	L.SetGlobal("toml", L.NewFunction(luaToml))
	state.AddFunction("arguments", luaArguments, L)
	state.AddFunction("log", luaLog, L)
	state.AddFunction("checksum", luaChecksum, L)
	state.AddFunction("scan", luaScan, L)

	err := L.DoString(script)
	return state.Logs.String(), err
}
